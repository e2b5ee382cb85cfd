package models

import "testing"

func TestNEVRAFormat(t *testing.T) {
	id := PackageIdentity{Name: "foo", Epoch: 0, Version: "1.2.3", Release: "4.el9", Arch: "x86_64"}

	if got, want := id.NEVRA(), "foo-0:1.2.3-4.el9.x86_64"; got != want {
		t.Errorf("NEVRA() = %q, want %q", got, want)
	}
}

func TestNEVRADeterministic(t *testing.T) {
	a := PackageIdentity{Name: "bash", Epoch: 2, Version: "5.1", Release: "1", Arch: "aarch64"}
	b := PackageIdentity{Name: "bash", Epoch: 2, Version: "5.1", Release: "1", Arch: "aarch64"}

	if a.NEVRA() != b.NEVRA() {
		t.Errorf("Equal identities formatted differently: %q vs %q", a.NEVRA(), b.NEVRA())
	}
}

func TestNEVRADistinguishesEveryField(t *testing.T) {
	base := PackageIdentity{Name: "foo", Epoch: 0, Version: "1.0", Release: "1", Arch: "noarch"}

	variants := []PackageIdentity{
		{Name: "bar", Epoch: 0, Version: "1.0", Release: "1", Arch: "noarch"},
		{Name: "foo", Epoch: 1, Version: "1.0", Release: "1", Arch: "noarch"},
		{Name: "foo", Epoch: 0, Version: "2.0", Release: "1", Arch: "noarch"},
		{Name: "foo", Epoch: 0, Version: "1.0", Release: "2", Arch: "noarch"},
		{Name: "foo", Epoch: 0, Version: "1.0", Release: "1", Arch: "x86_64"},
	}

	for _, variant := range variants {
		if variant.NEVRA() == base.NEVRA() {
			t.Errorf("Identity %+v formats to the same label as %+v", variant, base)
		}
	}
}

func TestToolErrorFormatting(t *testing.T) {
	inner := &ToolError{Type: ErrFormat, Err: errInner}

	if got := inner.Error(); got != "[Format] boom" {
		t.Errorf("Error() = %q", got)
	}

	withPath := &ToolError{Type: ErrFileOp, Path: "/tmp/x.rpm", Err: errInner}
	if got := withPath.Error(); got != "[FileOp] /tmp/x.rpm: boom" {
		t.Errorf("Error() = %q", got)
	}

	if withPath.Unwrap() != errInner {
		t.Errorf("Unwrap() should return the wrapped error")
	}
}

var errInner = errorString("boom")

type errorString string

func (e errorString) Error() string { return string(e) }
