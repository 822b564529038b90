package module

import "testing"

type fakePorts struct{ Name string }

func TestRegisterAndPortsAs(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register("publisher", fakePorts{Name: "p"})

	got, ok := PortsAs[fakePorts]("publisher")
	if !ok || got.Name != "p" {
		t.Fatalf("PortsAs = %+v ok=%v", got, ok)
	}

	if _, ok := PortsAs[fakePorts]("missing"); ok {
		t.Fatalf("PortsAs found unregistered module")
	}

	// wrong type assertion fails cleanly
	if _, ok := PortsAs[string]("publisher"); ok {
		t.Fatalf("PortsAs asserted to wrong type")
	}

	Reset()
	if _, ok := PortsAs[fakePorts]("publisher"); ok {
		t.Fatalf("Reset did not clear registry")
	}
}
