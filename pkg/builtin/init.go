package builtin

import "fmt"

// InitBuiltinFunctions makes sure every function group is registered.
// Groups register themselves in init(); importing the package is enough,
// this exists for callers that want an explicit hook.
func InitBuiltinFunctions() {}

// GetAllCategories returns the categories this extension registers.
func GetAllCategories() []string {
	return []string{CategorySpatial}
}

// GetFunctionCount returns the number of globally registered functions.
func GetFunctionCount() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.functions)
}

// ToFloat64 coerces a host value to float64.
func ToFloat64(arg interface{}) (float64, error) {
	switch v := arg.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("cannot convert %T to float64", arg)
	}
}

// ToInt64 coerces a host value to int64.
func ToInt64(arg interface{}) (int64, error) {
	switch v := arg.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case float32:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("cannot convert %T to int64", arg)
	}
}
