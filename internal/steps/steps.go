// Package steps связывает шаги Gherkin со страницами приложения.
package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"uiTest/internal/fixtures"
	"uiTest/internal/hooks"
	"uiTest/internal/pages"
)

const keyUser = "user"

var errNoWorld = errors.New("сценарий не инициализирован: нет браузера")

// Register добавляет все шаги в сценарий.
func Register(sc *godog.ScenarioContext) {
	sc.Step(`^I open the login page$`, openLoginPage)
	sc.Step(`^I log in as "([^"]*)"$`, loginAs)
	sc.Step(`^I log in with username "([^"]*)" and password "([^"]*)"$`, loginWith)
	sc.Step(`^I should see the dashboard welcome message$`, seeWelcome)
	sc.Step(`^I should see an error message$`, seeError)
	sc.Step(`^the error message should contain "([^"]*)"$`, errorContains)
	sc.Step(`^I (should|should not) have access to age-restricted content$`, ageRestricted)
	sc.Step(`^I go to my profile$`, goToProfile)
	sc.Step(`^I update my email to "([^"]*)"$`, updateEmail)
	sc.Step(`^I update my email to a random address$`, updateEmailRandom)
	sc.Step(`^I should see a success message$`, seeSuccess)
	sc.Step(`^my profile email should be "([^"]*)"$`, profileEmail)
	sc.Step(`^I log out$`, logout)
	sc.Step(`^I should be on the login page$`, onLoginPage)
}

func world(ctx context.Context) (*hooks.World, error) {
	w, ok := hooks.WorldFrom(ctx)
	if !ok {
		return nil, errNoWorld
	}
	return w, nil
}

func openLoginPage(ctx context.Context) error {
	w, err := world(ctx)
	if err != nil {
		return err
	}
	return pages.NewLoginPage(w.Page).Open(ctx)
}

func loginAs(ctx context.Context, userType string) error {
	w, err := world(ctx)
	if err != nil {
		return err
	}
	u, err := w.Data.User(userType)
	if err != nil {
		return err
	}
	w.Values[keyUser] = u
	return pages.NewLoginPage(w.Page).Login(ctx, u.Username, u.Password)
}

func loginWith(ctx context.Context, username, password string) error {
	w, err := world(ctx)
	if err != nil {
		return err
	}
	w.Values[keyUser] = fixtures.User{Username: username, Password: password}
	return pages.NewLoginPage(w.Page).Login(ctx, username, password)
}

func currentUser(w *hooks.World) (fixtures.User, error) {
	u, ok := w.Values[keyUser].(fixtures.User)
	if !ok {
		return fixtures.User{}, errors.New("пользователь еще не входил")
	}
	return u, nil
}

func seeWelcome(ctx context.Context) error {
	w, err := world(ctx)
	if err != nil {
		return err
	}
	dash := pages.NewDashboardPage(w.Page)
	if err := dash.WaitForURLContains(ctx, pages.DashboardPath, 0); err != nil {
		return err
	}
	msg, err := dash.WelcomeMessage(ctx)
	if err != nil {
		return err
	}
	u, err := currentUser(w)
	if err != nil {
		return err
	}
	if !strings.Contains(msg, u.Username) {
		return fmt.Errorf("приветствие %q не содержит %q", msg, u.Username)
	}
	return nil
}

func seeError(ctx context.Context) error {
	w, err := world(ctx)
	if err != nil {
		return err
	}
	shown, err := pages.NewLoginPage(w.Page).IsErrorDisplayed(ctx)
	if err != nil {
		return err
	}
	if !shown {
		return errors.New("сообщение об ошибке не показано")
	}
	return nil
}

func errorContains(ctx context.Context, text string) error {
	w, err := world(ctx)
	if err != nil {
		return err
	}
	msg, err := pages.NewLoginPage(w.Page).ErrorMessage(ctx)
	if err != nil {
		return err
	}
	if !strings.Contains(msg, text) {
		return fmt.Errorf("ошибка %q не содержит %q", msg, text)
	}
	return nil
}

func ageRestricted(ctx context.Context, expectation string) error {
	w, err := world(ctx)
	if err != nil {
		return err
	}
	allowed, err := pages.NewDashboardPage(w.Page).CanAccessAgeRestrictedContent(ctx)
	if err != nil {
		return err
	}
	want := expectation == "should"
	if allowed != want {
		return fmt.Errorf("доступ к контенту 18+: ожидалось %t, получено %t", want, allowed)
	}
	return nil
}

func goToProfile(ctx context.Context) error {
	w, err := world(ctx)
	if err != nil {
		return err
	}
	profile, err := pages.NewDashboardPage(w.Page).GoToProfile(ctx)
	if err != nil {
		return err
	}
	return profile.WaitForURLContains(ctx, pages.ProfilePath, 0)
}

func updateEmail(ctx context.Context, email string) error {
	w, err := world(ctx)
	if err != nil {
		return err
	}
	return pages.NewProfilePage(w.Page).UpdateProfile(ctx, pages.ProfileUpdate{Email: email})
}

func updateEmailRandom(ctx context.Context) error {
	w, err := world(ctx)
	if err != nil {
		return err
	}
	email := strings.ToLower(fixtures.RandomString(10)) + "@example.com"
	w.Values["email"] = email
	return pages.NewProfilePage(w.Page).UpdateProfile(ctx, pages.ProfileUpdate{Email: email})
}

func seeSuccess(ctx context.Context) error {
	w, err := world(ctx)
	if err != nil {
		return err
	}
	shown, err := pages.NewProfilePage(w.Page).IsSuccessMessageDisplayed(ctx)
	if err != nil {
		return err
	}
	if !shown {
		return errors.New("сообщение об успехе не показано")
	}
	return nil
}

func profileEmail(ctx context.Context, want string) error {
	w, err := world(ctx)
	if err != nil {
		return err
	}
	got, err := pages.NewProfilePage(w.Page).Email(ctx)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("email в профиле %q, ожидался %q", got, want)
	}
	return nil
}

func logout(ctx context.Context) error {
	w, err := world(ctx)
	if err != nil {
		return err
	}
	_, err = pages.NewDashboardPage(w.Page).Logout(ctx)
	return err
}

func onLoginPage(ctx context.Context) error {
	w, err := world(ctx)
	if err != nil {
		return err
	}
	return w.Page.WaitForURLContains(ctx, pages.LoginPath, 0)
}
