package access

import "testing"

func TestClassifyRole(t *testing.T) {
	tests := []struct {
		role string
		want Tier
	}{
		{"superadmin", TierSuperadmin},
		{"SUPERADMIN", TierSuperadmin},
		{"admin", TierAdmin},
		{"ADMIN", TierAdmin},
		{"Admin", TierAdmin},
		{"docente", TierStaff},
		{"Docente", TierStaff},
		{"director de nivel", TierStaff},
		{"director de área", TierStaff},
		{"representante legal", TierStaff},
		{"propietario", TierStaff},
		{"mantenimiento", TierStaff},
		{"preceptor", TierStaff},
		{"secretaria", TierStaff},
		{"secretario", TierStaff},
		{"director general", TierStaff},
		{"administrativo", TierStaff},
		{"maestranza", TierStaff},
		{"familiar", TierCommunity},
		{"estudiante", TierCommunity},
		{"ESTUDIANTE", TierCommunity},
		{"  docente  ", TierStaff},
		{"", TierGeneric},
		{"alumno", TierGeneric},
		{"director", TierGeneric},
	}

	for _, tt := range tests {
		if got := ClassifyRole(tt.role); got != tt.want {
			t.Errorf("ClassifyRole(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestLandingRoutes(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{"superadmin", "/dashboard/superadmin"},
		{"admin", "/dashboard/admin"},
		{"docente", "/dashboard/staff"},
		{"familiar", "/dashboard/community"},
		{"estudiante", "/dashboard/community"},
		{"whatever", "/dashboard/generic"},
		{"", "/dashboard/generic"},
	}

	for _, tt := range tests {
		if got := LandingRouteForRole(tt.role); got != tt.want {
			t.Errorf("LandingRouteForRole(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestNavigationForEveryTier(t *testing.T) {
	for _, tier := range []Tier{TierSuperadmin, TierAdmin, TierStaff, TierCommunity, TierGeneric} {
		links := NavigationFor(tier)
		if len(links) == 0 {
			t.Errorf("NavigationFor(%v) returned no links", tier)
		}
		for _, l := range links {
			if l.Label == "" || l.Route == "" || l.Icon == "" {
				t.Errorf("NavigationFor(%v) has incomplete link %+v", tier, l)
			}
		}
	}

	if NavigationFor(TierSuperadmin)[1].Route != "/dashboard/superadmin/schools" {
		t.Errorf("superadmin navigation order changed: %+v", NavigationFor(TierSuperadmin))
	}
}
