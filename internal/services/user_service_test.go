package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Mr-K2901/TnP-Portal/internal/auth"
	"github.com/Mr-K2901/TnP-Portal/internal/models"
)

func newUserService(t *testing.T) (*UserService, *ApplicationService) {
	t.Helper()
	db := openTestDB(t)
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	return NewUserService(db, issuer), NewApplicationService(db)
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newUserService(t)

	cgpa := 8.4
	user, err := svc.Register(RegisterInput{
		Email:    "asha@college.edu",
		Password: "correct horse",
		Role:     models.RoleStudent,
		FullName: "Asha",
		Branch:   "CSE",
		CGPA:     &cgpa,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Profile == nil || user.Profile.FullName != "Asha" {
		t.Fatal("student registration must create a profile")
	}
	if user.PasswordHash == "correct horse" {
		t.Fatal("password stored in plain text")
	}

	token, _, err := svc.Login("asha@college.edu", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := svc.Issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.Role != models.RoleStudent {
		t.Errorf("token role = %s, want STUDENT", claims.Role)
	}

	if _, _, err := svc.Login("asha@college.edu", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login("nobody@college.edu", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newUserService(t)
	in := RegisterInput{Email: "asha@college.edu", Password: "passw0rd!", Role: models.RoleStudent, FullName: "Asha", Branch: "CSE"}
	if _, err := svc.Register(in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(in); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate register error = %v, want ErrEmailTaken", err)
	}
}

func TestAdminRegistrationHasNoProfile(t *testing.T) {
	svc, _ := newUserService(t)
	user, err := svc.Register(RegisterInput{Email: "tnp@college.edu", Password: "passw0rd!", Role: models.RoleAdmin})
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}
	if user.Profile != nil {
		t.Error("admin must not get a profile row")
	}
}

func TestUpdateProfileCannotTouchPlacement(t *testing.T) {
	svc, _ := newUserService(t)
	user, _ := svc.Register(RegisterInput{Email: "asha@college.edu", Password: "passw0rd!", Role: models.RoleStudent, FullName: "Asha", Branch: "CSE"})

	profile, err := svc.UpdateProfile(user.ID, map[string]interface{}{
		"resume_url": "https://cv.example/asha.pdf",
		"is_placed":  true,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if profile.ResumeURL != "https://cv.example/asha.pdf" {
		t.Errorf("resume_url = %s, not applied", profile.ResumeURL)
	}
	if profile.IsPlaced {
		t.Error("student update must never flip is_placed")
	}
}

func TestMarkPlaced(t *testing.T) {
	svc, _ := newUserService(t)
	user, _ := svc.Register(RegisterInput{Email: "asha@college.edu", Password: "passw0rd!", Role: models.RoleStudent, FullName: "Asha", Branch: "CSE"})

	profile, err := svc.MarkPlaced(user.ID)
	if err != nil {
		t.Fatalf("mark placed: %v", err)
	}
	if !profile.IsPlaced {
		t.Error("is_placed not set")
	}
	if _, err := svc.MarkPlaced(user.ID); !errors.Is(err, ErrAlreadyPlaced) {
		t.Errorf("second mark error = %v, want ErrAlreadyPlaced", err)
	}
}

func TestListStudentsDerivesPlacedCompany(t *testing.T) {
	svc, apps := newUserService(t)
	db := svc.DB

	user, _ := svc.Register(RegisterInput{Email: "asha@college.edu", Password: "passw0rd!", Role: models.RoleStudent, FullName: "Asha", Branch: "CSE"})
	job := createJob(t, db, "Initech", true)

	app, _ := apps.Apply(job.ID, user.ID)
	apps.Select(app.ID)
	apps.StartProcess(app.ID)
	apps.ScheduleInterview(app.ID)
	apps.Shortlist(app.ID)
	apps.ReleaseOffer(app.ID, 7)
	if _, err := apps.AcceptOffer(app.ID, user.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	students, err := svc.ListStudents(StudentFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("students = %d, want 1", len(students))
	}
	got := students[0]
	if !got.IsPlaced {
		t.Error("student should be placed")
	}
	if got.ApplicationsCount != 1 {
		t.Errorf("applications_count = %d, want 1", got.ApplicationsCount)
	}
	if got.PlacedCompany == nil || *got.PlacedCompany != "Initech" {
		t.Errorf("placed_company = %v, want Initech", got.PlacedCompany)
	}
}

func TestListStudentsFilters(t *testing.T) {
	svc, _ := newUserService(t)

	lowCGPA := 6.0
	highCGPA := 9.1
	svc.Register(RegisterInput{Email: "a@college.edu", Password: "passw0rd!", Role: models.RoleStudent, FullName: "A", Branch: "CSE", CGPA: &highCGPA})
	svc.Register(RegisterInput{Email: "b@college.edu", Password: "passw0rd!", Role: models.RoleStudent, FullName: "B", Branch: "ECE", CGPA: &lowCGPA})
	svc.Register(RegisterInput{Email: "tnp@college.edu", Password: "passw0rd!", Role: models.RoleAdmin})

	all, _ := svc.ListStudents(StudentFilter{})
	if len(all) != 2 {
		t.Errorf("unfiltered students = %d, want 2 (admins excluded)", len(all))
	}

	cse, _ := svc.ListStudents(StudentFilter{Branch: "CSE"})
	if len(cse) != 1 || cse[0].FullName != "A" {
		t.Errorf("branch filter returned %d, want just A", len(cse))
	}

	min := 7.0
	bright, _ := svc.ListStudents(StudentFilter{MinCGPA: &min})
	if len(bright) != 1 || bright[0].FullName != "A" {
		t.Errorf("min_cgpa filter returned %d, want just A", len(bright))
	}
}
