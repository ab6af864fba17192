package plugin

import (
	"errors"
	"reflect"
	"testing"
)

type fakePlugin struct {
	name    string
	initErr error
	log     *[]string
}

func (p *fakePlugin) Name() string { return p.name }

func (p *fakePlugin) Initialize(api EditorAPI) error {
	*p.log = append(*p.log, "init "+p.name)
	return p.initErr
}

func (p *fakePlugin) Shutdown() error {
	*p.log = append(*p.log, "stop "+p.name)
	return nil
}

func TestManagerLifecycleOrder(t *testing.T) {
	var log []string
	m := NewManager()
	for _, name := range []string{"a", "b"} {
		if err := m.Register(&fakePlugin{name: name, log: &log}); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.Register(&fakePlugin{name: "a", log: &log}); err == nil {
		t.Error("duplicate name should be rejected")
	}
	if err := m.Register(&fakePlugin{log: &log}); err == nil {
		t.Error("empty name should be rejected")
	}

	m.InitializePlugins(nil)
	m.ShutdownPlugins()
	want := []string{"init a", "init b", "stop b", "stop a"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestFailingPluginDoesNotStopOthers(t *testing.T) {
	var log []string
	m := NewManager()
	_ = m.Register(&fakePlugin{name: "bad", initErr: errors.New("boom"), log: &log})
	_ = m.Register(&fakePlugin{name: "good", log: &log})

	failed := m.InitializePlugins(nil)
	if !reflect.DeepEqual(failed, []string{"bad"}) {
		t.Errorf("failed = %v", failed)
	}
	if _, ok := m.GetPlugin("good"); !ok {
		t.Error("good plugin missing")
	}
	if len(log) != 2 {
		t.Errorf("log = %v", log)
	}
}
