package pages

import (
	"context"
	"errors"
	"strconv"

	"uiTest/internal/browser"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
	ProfilePath   = "/profile"
)

var (
	LoginUsername = browser.ID("username")
	LoginPassword = browser.ID("password")
	LoginButton   = browser.ID("login-button")
	LoginError    = browser.CSS(".error-message")

	DashboardWelcome       = browser.CSS(".welcome-message")
	DashboardLogout        = browser.ID("logout-button")
	DashboardProfile       = browser.ID("user-profile")
	DashboardAgeRestricted = browser.ID("age-restricted-content")

	ProfileUsername = browser.ID("profile-username")
	ProfileEmail    = browser.ID("profile-email")
	ProfileAge      = browser.ID("profile-age")
	ProfileSave     = browser.ID("save-profile")
	ProfileSuccess  = browser.CSS(".success-message")
)

var errNoData = errors.New("хранилище тестовых данных не задано")

type LoginPage struct {
	*Base
}

func NewLoginPage(b *Base) *LoginPage {
	return &LoginPage{Base: b}
}

func (p *LoginPage) Open(ctx context.Context) error {
	return p.Base.Open(ctx, p.URLFor(LoginPath))
}

func (p *LoginPage) Login(ctx context.Context, username, password string) error {
	if err := p.InputText(ctx, LoginUsername, username); err != nil {
		return err
	}
	if err := p.InputText(ctx, LoginPassword, password); err != nil {
		return err
	}
	return p.Click(ctx, LoginButton)
}

// LoginAsUser входит под пользователем из таблицы users.
// Неизвестный тип дает default_user.
func (p *LoginPage) LoginAsUser(ctx context.Context, userType string) error {
	if p.data == nil {
		return errNoData
	}
	u, err := p.data.User(userType)
	if err != nil {
		return err
	}
	return p.Login(ctx, u.Username, u.Password)
}

func (p *LoginPage) ErrorMessage(ctx context.Context) (string, error) {
	return p.Text(ctx, LoginError)
}

func (p *LoginPage) IsErrorDisplayed(ctx context.Context) (bool, error) {
	return p.IsElementDisplayed(ctx, LoginError, 0)
}

type DashboardPage struct {
	*Base
}

func NewDashboardPage(b *Base) *DashboardPage {
	return &DashboardPage{Base: b}
}

func (p *DashboardPage) Open(ctx context.Context) error {
	return p.Base.Open(ctx, p.URLFor(DashboardPath))
}

func (p *DashboardPage) WelcomeMessage(ctx context.Context) (string, error) {
	return p.Text(ctx, DashboardWelcome)
}

func (p *DashboardPage) Logout(ctx context.Context) (*LoginPage, error) {
	if err := p.Click(ctx, DashboardLogout); err != nil {
		return nil, err
	}
	return NewLoginPage(p.Base), nil
}

func (p *DashboardPage) GoToProfile(ctx context.Context) (*ProfilePage, error) {
	if err := p.Click(ctx, DashboardProfile); err != nil {
		return nil, err
	}
	return NewProfilePage(p.Base), nil
}

func (p *DashboardPage) CanAccessAgeRestrictedContent(ctx context.Context) (bool, error) {
	return p.IsElementDisplayed(ctx, DashboardAgeRestricted, 0)
}

type ProfilePage struct {
	*Base
}

func NewProfilePage(b *Base) *ProfilePage {
	return &ProfilePage{Base: b}
}

func (p *ProfilePage) Open(ctx context.Context) error {
	return p.Base.Open(ctx, p.URLFor(ProfilePath))
}

func (p *ProfilePage) Username(ctx context.Context) (string, error) {
	return p.Attribute(ctx, ProfileUsername, "value")
}

func (p *ProfilePage) Email(ctx context.Context) (string, error) {
	return p.Attribute(ctx, ProfileEmail, "value")
}

func (p *ProfilePage) Age(ctx context.Context) (string, error) {
	return p.Attribute(ctx, ProfileAge, "value")
}

// ProfileUpdate задает новые значения профиля, пустые поля не трогаются.
type ProfileUpdate struct {
	Username string
	Email    string
	Age      int
}

func (p *ProfilePage) UpdateProfile(ctx context.Context, u ProfileUpdate) error {
	if u.Username != "" {
		if err := p.InputText(ctx, ProfileUsername, u.Username); err != nil {
			return err
		}
	}
	if u.Email != "" {
		if err := p.InputText(ctx, ProfileEmail, u.Email); err != nil {
			return err
		}
	}
	if u.Age != 0 {
		if err := p.InputText(ctx, ProfileAge, strconv.Itoa(u.Age)); err != nil {
			return err
		}
	}
	return p.Click(ctx, ProfileSave)
}

func (p *ProfilePage) IsSuccessMessageDisplayed(ctx context.Context) (bool, error) {
	return p.IsElementDisplayed(ctx, ProfileSuccess, 0)
}
