package constants

import "fmt"

// Role yang dikenal portal
const (
	RoleJamaah    = "jamaah"    // anggota biasa
	RoleBendahara = "bendahara" // pengurus keuangan
	RoleAdmin     = "admin"     // pengurus penuh
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess   = "❌ Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyPengurusCanAccess = "❌ Hanya admin atau bendahara yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorPengurus(feature string) string {
	return fmt.Sprintf(ErrOnlyPengurusCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleJamaah,
		RoleBendahara,
		RoleAdmin,
	}

	PengurusRoles = []string{
		RoleBendahara,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
