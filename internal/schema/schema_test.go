package schema

import "testing"

func TestFunctionKeyJoinsNameAndArgumentTypes(t *testing.T) {
	f := Function{Name: "f", ArgumentTypes: []string{"integer", "text"}}
	if got := f.Key(); got != "f(integer,text)" {
		t.Errorf("expected 'f(integer,text)', got %q", got)
	}
}

func TestFunctionKeyWithNoArguments(t *testing.T) {
	f := Function{Name: "now"}
	if got := f.Key(); got != "now()" {
		t.Errorf("expected 'now()', got %q", got)
	}
}

func TestFunctionKeyDistinguishesOverloads(t *testing.T) {
	a := Function{Name: "f", ArgumentTypes: []string{"integer"}}
	b := Function{Name: "f", ArgumentTypes: []string{"bigint"}}
	if a.Key() == b.Key() {
		t.Error("expected distinct signatures to produce distinct keys")
	}
}

func TestTableViewSequenceKeysAreTheirName(t *testing.T) {
	if (Table{Name: "users"}).Key() != "users" {
		t.Error("expected Table.Key() to be its Name")
	}
	if (View{Name: "v_active"}).Key() != "v_active" {
		t.Error("expected View.Key() to be its Name")
	}
	if (Sequence{Name: "users_id_seq"}).Key() != "users_id_seq" {
		t.Error("expected Sequence.Key() to be its Name")
	}
}
