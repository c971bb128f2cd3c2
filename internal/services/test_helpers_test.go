package services_test

import "github.com/csdept/deptsite-api/internal/models"

func testRoster() []models.FacultyMember {
	return []models.FacultyMember{
		{ID: "ada", Name: "Dr. Ada Lovelace", Specialization: "ai", SpecializationLabel: "Artificial Intelligence", Position: "Professor"},
		{ID: "alan", Name: "Dr. Alan Turing", Specialization: "theory", SpecializationLabel: "Theory of Computation", Position: "Professor"},
		{ID: "grace", Name: "Dr. Grace Hopper", Specialization: "systems", SpecializationLabel: "Systems and Compilers", Position: "Associate Professor"},
		{ID: "geoff", Name: "Dr. Geoffrey Hinton", Specialization: "ai", SpecializationLabel: "Machine Learning", Position: "Adjunct Professor"},
	}
}

func validContactRequest() *models.ContactFormRequest {
	return &models.ContactFormRequest{
		Name:    "  Jo Student ",
		Email:   "jo@example.edu",
		Phone:   "(555) 123-4567",
		Subject: "admissions",
		Message: "When is the application deadline?",
	}
}
