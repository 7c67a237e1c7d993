package quadlet

import (
	"errors"
	"testing"
)

func TestParseBytesResolvesContainerName(t *testing.T) {
	data := []byte(`[Unit]
Description=My DNS updater

[Container]
Image=djf/ddns
ContainerName=ddns
`)
	unit, err := ParseBytes("/srv/ddns/ddns.container", data)
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	if unit.Image != "djf/ddns" {
		t.Errorf("Image = %q, want %q", unit.Image, "djf/ddns")
	}
	if got := unit.ResolveName(); got != "ddns" {
		t.Errorf("ResolveName = %q, want %q", got, "ddns")
	}
}

func TestResolveNameFallsBackToDescription(t *testing.T) {
	data := []byte(`[Unit]
Description=golf

[Container]
Image=djf/rusty-golf-from-cont-file
`)
	unit, err := ParseBytes("/srv/golf/site.container", data)
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	if got := unit.ResolveName(); got != "golf" {
		t.Errorf("ResolveName = %q, want %q", got, "golf")
	}
}

func TestResolveNameFallsBackToFileStem(t *testing.T) {
	data := []byte(`[Container]
Image=djf/squid-from-cont
`)
	unit, err := ParseBytes("/srv/proxy/squid.container", data)
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	if got := unit.ResolveName(); got != "squid" {
		t.Errorf("ResolveName = %q, want %q", got, "squid")
	}
}

func TestParseBytesErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name:    "no container section",
			data:    "[Unit]\nDescription=x\n",
			wantErr: ErrNoContainerSection,
		},
		{
			name:    "no image directive",
			data:    "[Container]\nContainerName=x\n",
			wantErr: ErrNoImage,
		},
		{
			name:    "blank image value",
			data:    "[Container]\nImage=\n",
			wantErr: ErrNoImage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes("bad.container", []byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
