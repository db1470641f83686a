package mockapi

import (
	"github.com/google/uuid"

	"github.com/mymentor/mymentor-go/internal/model/user"
)

// Seed accounts. The passwords are development-only fixtures.
const (
	SeedAdminEmail    = "admin@mymentor.dev"
	SeedAdminPassword = "mentor-admin-1"
	SeedUserEmail     = "carla@mymentor.dev"
	SeedUserPassword  = "mentor-user-1"
)

// seed loads a small tenant: one admin, one regular user, the general
// consultation professional plus two specialists. Asesor ids are allocated
// from the same sequence as every other entity.
func (s *Server) seed() {
	s.areas = []user.Area{
		{ID: s.allocID(), Name: "General"},
		{ID: s.allocID(), Name: "Ingeniería"},
		{ID: s.allocID(), Name: "Finanzas"},
	}

	s.pros = []user.Professional{
		{ID: s.allocID(), Name: "Consulta General", Description: "Asesoría sobre cualquier tema", Area: s.areas[0]},
		{ID: s.allocID(), Name: "Arquitectura de Software", Description: "Diseño y revisión de sistemas", Area: s.areas[1]},
		{ID: s.allocID(), Name: "Planificación Financiera", Description: "Finanzas personales y de empresa", Area: s.areas[2]},
	}

	admin := user.User{
		UUID:        uuid.NewString(),
		Name:        "Ana",
		LastName:    "Torres",
		PhoneNumber: 56911112222,
		Email:       SeedAdminEmail,
		Admin:       true,
		Enabled:     true,
		Asesores: []user.Asesor{
			{ID: s.allocID(), Professional: s.pros[0]},
			{ID: s.allocID(), Professional: s.pros[1]},
		},
	}

	member := user.User{
		UUID:        uuid.NewString(),
		Name:        "Carla",
		LastName:    "Mendoza",
		PhoneNumber: 56933334444,
		Email:       SeedUserEmail,
		Admin:       false,
		Enabled:     true,
		Asesores: []user.Asesor{
			{ID: s.allocID(), Professional: s.pros[0]},
		},
	}

	s.accounts[admin.Email] = &account{User: admin, password: SeedAdminPassword}
	s.accounts[member.Email] = &account{User: member, password: SeedUserPassword}
}
