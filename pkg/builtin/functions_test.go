package builtin

import (
	"testing"
)

func dummyHandler(args []interface{}) (interface{}, error) { return nil, nil }

func TestRegistry_RegisterValidation(t *testing.T) {
	r := NewFunctionRegistry()
	if err := r.Register(nil); err == nil {
		t.Error("expected error for nil info")
	}
	if err := r.Register(&FunctionInfo{Handler: dummyHandler}); err == nil {
		t.Error("expected error for empty name")
	}
	if err := r.Register(&FunctionInfo{Name: "f"}); err == nil {
		t.Error("expected error for nil handler")
	}
	if err := r.Register(&FunctionInfo{Name: "f", Handler: dummyHandler}); err != nil {
		t.Errorf("valid registration failed: %v", err)
	}
}

func TestRegistry_GetExistsUnregister(t *testing.T) {
	r := NewFunctionRegistry()
	r.Register(&FunctionInfo{Name: "f", Handler: dummyHandler, Category: "x"})

	if !r.Exists("f") {
		t.Error("expected f to exist")
	}
	info, ok := r.Get("f")
	if !ok || info.Name != "f" {
		t.Errorf("Get(f) = %v, %v", info, ok)
	}
	if _, ok := r.Get("g"); ok {
		t.Error("unexpected hit for g")
	}

	if !r.Unregister("f") {
		t.Error("expected Unregister to report removal")
	}
	if r.Unregister("f") {
		t.Error("second Unregister should report absence")
	}
	if r.Exists("f") {
		t.Error("f still exists after Unregister")
	}
}

func TestRegistry_ReRegisterReplaces(t *testing.T) {
	r := NewFunctionRegistry()
	r.Register(&FunctionInfo{Name: "f", Handler: dummyHandler, Description: "old"})
	r.Register(&FunctionInfo{Name: "f", Handler: dummyHandler, Description: "new"})
	info, _ := r.Get("f")
	if info.Description != "new" {
		t.Errorf("expected replacement, got %q", info.Description)
	}
}

func TestRegistry_ListByCategory(t *testing.T) {
	r := NewFunctionRegistry()
	r.Register(&FunctionInfo{Name: "a", Handler: dummyHandler, Category: "one"})
	r.Register(&FunctionInfo{Name: "b", Handler: dummyHandler, Category: "one"})
	r.Register(&FunctionInfo{Name: "c", Handler: dummyHandler, Category: "two"})

	if got := len(r.ListByCategory("one")); got != 2 {
		t.Errorf("ListByCategory(one) = %d entries", got)
	}
	if got := len(r.List()); got != 3 {
		t.Errorf("List = %d entries", got)
	}
}

func TestGetAllCategories(t *testing.T) {
	cats := GetAllCategories()
	if len(cats) != 1 || cats[0] != CategorySpatial {
		t.Errorf("GetAllCategories = %v", cats)
	}
}

func TestGetFunctionCount(t *testing.T) {
	if GetFunctionCount() < 20 {
		t.Errorf("expected at least 20 global functions, got %d", GetFunctionCount())
	}
}

func TestGetFunctionCount_ConcurrentWithRegister(t *testing.T) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			RegisterGlobal(&FunctionInfo{Name: "tmp_concurrent_count", Handler: dummyHandler})
		}
	}()
	for i := 0; i < 100; i++ {
		GetFunctionCount()
	}
	<-done
	GetGlobalRegistry().Unregister("tmp_concurrent_count")
}
