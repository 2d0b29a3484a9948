package capability

import (
	"strings"

	"github.com/gogpu/gralloc/usage"
)

// Role is a hardware block that can produce or consume a buffer.
type Role uint8

const (
	CPU Role = iota
	GPU
	// DPU is the display processor.
	DPU
	// DPUAEU is the display AFBC encoder; it only produces.
	DPUAEU
	// VPU is the video processor.
	VPU
	// CAM is the camera ISP; it only produces.
	CAM

	roleCount
)

var roleNames = [roleCount]string{
	CPU:    "CPU",
	GPU:    "GPU",
	DPU:    "DPU",
	DPUAEU: "DPU_AEU",
	VPU:    "VPU",
	CAM:    "CAM",
}

func (r Role) String() string {
	if r >= roleCount {
		return "UNKNOWN"
	}
	return roleNames[r]
}

// Roles returns every role in declaration order.
func Roles() []Role {
	return []Role{CPU, GPU, DPU, DPUAEU, VPU, CAM}
}

// RoleSet is a set of roles.
type RoleSet uint8

// NewRoleSet returns the set holding rs.
func NewRoleSet(rs ...Role) RoleSet {
	var s RoleSet
	for _, r := range rs {
		s |= 1 << r
	}
	return s
}

// Has reports whether r is in the set.
func (s RoleSet) Has(r Role) bool { return s&(1<<r) != 0 }

// Without returns the set with r removed.
func (s RoleSet) Without(r Role) RoleSet { return s &^ (1 << r) }

// IsEmpty reports whether the set holds no roles.
func (s RoleSet) IsEmpty() bool { return s == 0 }

func (s RoleSet) String() string {
	if s == 0 {
		return "NONE"
	}
	var parts []string
	for r := CPU; r < roleCount; r++ {
		if s.Has(r) {
			parts = append(parts, r.String())
		}
	}
	return strings.Join(parts, "|")
}

// Consumers returns the roles that read a buffer with usage u.
//
// A usage of exactly HWComposer means the display reads the buffer.
func Consumers(u usage.Usage) RoleSet {
	u = u.Public()
	if u == usage.HWComposer {
		return NewRoleSet(DPU)
	}

	var s RoleSet
	if u.Any(usage.SWReadMask) {
		s |= NewRoleSet(CPU)
	}
	// A framebuffer is always scanned out by the display.
	if u.Any(usage.HWFramebuffer) {
		s |= NewRoleSet(DPU)
	}
	if u.Any(usage.HWVideoEncoder) {
		s |= NewRoleSet(VPU)
	}
	// Composer with texture is a buffer the display may read directly
	// instead of having the GPU compose it.
	if u.Has(usage.HWTexture | usage.HWComposer) {
		s |= NewRoleSet(DPU)
	}
	if u.Any(usage.HWTexture | usage.GPUDataBuffer) {
		s |= NewRoleSet(GPU)
	}
	return s
}

// Producers returns the roles that write a buffer with usage u.
//
// A usage of exactly HWComposer means the display AFBC encoder writes
// the buffer.
func Producers(u usage.Usage) RoleSet {
	u = u.Public()
	if u == usage.HWComposer {
		return NewRoleSet(DPUAEU)
	}

	var s RoleSet
	if u.Any(usage.SWWriteMask) {
		s |= NewRoleSet(CPU)
	}
	// Display write-back: composer output fed to the encoder.
	if !u.Has(usage.Decoder) && u.Has(usage.HWComposer|usage.HWVideoEncoder) {
		s |= NewRoleSet(DPU)
	}
	if u.Any(usage.HWRender | usage.GPUDataBuffer) {
		s |= NewRoleSet(GPU)
	}
	if u.Any(usage.HWCameraWrite) {
		s |= NewRoleSet(CAM)
	}
	if u.Has(usage.Decoder) {
		s |= NewRoleSet(VPU)
	}
	return s
}
