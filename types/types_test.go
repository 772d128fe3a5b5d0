package types

import (
	"os"
	"path/filepath"
	"testing"
)

func validSpec() *InstanceSpec {
	return &InstanceSpec{
		Name:          "vm3.example.com",
		OS:            "debootstrap+default",
		DiskTemplate:  "drbd",
		Disks:         []DiskSpec{{Size: 10240}},
		Memory:        512,
		VCPUs:         1,
		PrimaryNode:   "node1",
		SecondaryNode: "node2",
	}
}

func TestInstanceSpec_Validate(t *testing.T) {
	if err := validSpec().Validate(); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}
}

func TestInstanceSpec_Validate_Diskless(t *testing.T) {
	s := validSpec()
	s.DiskTemplate = "diskless"
	s.Disks = nil
	if err := s.Validate(); err != nil {
		t.Errorf("diskless spec without disks rejected: %v", err)
	}
}

func TestInstanceSpec_Validate_Allocator(t *testing.T) {
	s := validSpec()
	s.PrimaryNode = ""
	s.SecondaryNode = ""
	s.IAllocator = "hail"
	if err := s.Validate(); err != nil {
		t.Errorf("allocator-placed spec rejected: %v", err)
	}
}

func TestInstanceSpec_Validate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*InstanceSpec)
	}{
		{"missing name", func(s *InstanceSpec) { s.Name = "" }},
		{"bad name", func(s *InstanceSpec) { s.Name = "vm3_underscore" }},
		{"missing os", func(s *InstanceSpec) { s.OS = "" }},
		{"bad disk template", func(s *InstanceSpec) { s.DiskTemplate = "rust" }},
		{"no disks", func(s *InstanceSpec) { s.Disks = nil }},
		{"zero-size disk", func(s *InstanceSpec) { s.Disks = []DiskSpec{{Size: 0}} }},
		{"zero memory", func(s *InstanceSpec) { s.Memory = 0 }},
		{"zero vcpus", func(s *InstanceSpec) { s.VCPUs = 0 }},
		{"pnode and iallocator", func(s *InstanceSpec) { s.IAllocator = "hail" }},
		{"no placement", func(s *InstanceSpec) { s.PrimaryNode = ""; s.SecondaryNode = "" }},
		{"bad nic ip", func(s *InstanceSpec) { s.NICs = []NICSpec{{IP: "not-an-ip"}} }},
		{"bad nic mode", func(s *InstanceSpec) { s.NICs = []NICSpec{{Mode: "bonded"}} }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := validSpec()
			tc.mutate(s)
			if err := s.Validate(); err == nil {
				t.Error("spec should have been rejected")
			}
		})
	}
}

func TestLoadInstanceSpec_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vm3.yaml")
	content := `name: vm3.example.com
os: debootstrap+default
disk_template: drbd
disks:
  - size: 10240
  - size: 2048
    mode: rw
memory: 512
vcpus: 1
pnode: node1
snode: node2
tags:
  - web
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	spec, err := LoadInstanceSpec(path)
	if err != nil {
		t.Fatalf("LoadInstanceSpec returned error: %v", err)
	}
	if spec.Name != "vm3.example.com" {
		t.Errorf("name = %q, want vm3.example.com", spec.Name)
	}
	if len(spec.Disks) != 2 || spec.Disks[1].Mode != "rw" {
		t.Errorf("disks = %+v, want two disks with the second rw", spec.Disks)
	}
	if len(spec.Tags) != 1 || spec.Tags[0] != "web" {
		t.Errorf("tags = %v, want [web]", spec.Tags)
	}
}

func TestLoadInstanceSpec_InvalidSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vm3.yaml")
	content := `name: vm3.example.com
disk_template: plain
disks:
  - size: 1024
memory: 512
vcpus: 1
pnode: node1
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	// os missing
	if _, err := LoadInstanceSpec(path); err == nil {
		t.Fatal("LoadInstanceSpec should reject a spec without an os")
	}
}

func TestLoadInstanceSpec_MissingFile(t *testing.T) {
	if _, err := LoadInstanceSpec(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("LoadInstanceSpec should fail on a missing file")
	}
}
