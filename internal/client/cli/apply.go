package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/casiec/internal/client/models"
	"github.com/dmitrijs2005/casiec/internal/client/wizard"
)

var (
	errBack   = errors.New("back")
	errCancel = errors.New("cancelled")
)

var pathLabels = map[models.PathType]string{
	models.PathFinancial:       "Financial services",
	models.PathBusinessSupport: "Business support",
}

// parsePath maps the optional argument of "apply" to a wizard path.
func parsePath(arg string) (models.PathType, error) {
	switch strings.ToLower(arg) {
	case "":
		return "", nil
	case "financial", "finance", "funding":
		return models.PathFinancial, nil
	case "support", "business_support":
		return models.PathBusinessSupport, nil
	}
	return "", fmt.Errorf("%w: %q", wizard.ErrUnknownPath, arg)
}

// Apply walks the user through the inquiry wizard. Typing "back" at any
// prompt returns to the previous step and "cancel" discards the draft.
func (a *App) Apply(ctx context.Context, arg string) error {
	path, err := parsePath(arg)
	if err != nil {
		return err
	}
	if err := a.wizard.Open(path); err != nil {
		return err
	}
	defer a.wizard.Close()

	printlnFn("Type 'back' to return to the previous step or 'cancel' to stop.")

	for {
		step := a.wizard.Step()
		if step == wizard.StepSubmitted {
			return nil
		}

		printlnFn(fmt.Sprintf("-- Step %d of 5: %s --", int(step), step))
		err := a.applyStep(ctx, step)
		a.flush()

		switch {
		case err == nil:
		case errors.Is(err, errBack):
			if err := a.wizard.Back(); err != nil {
				printlnFn("Already at the first step.")
			}
		case errors.Is(err, errCancel):
			printlnFn("Application cancelled.")
			return nil
		case errors.Is(err, wizard.ErrIncomplete), errors.Is(err, errInvalidChoice):
			printlnFn(err.Error())
		default:
			return err
		}
	}
}

func (a *App) applyStep(ctx context.Context, step wizard.Step) error {
	switch step {
	case wizard.StepPathSelect:
		return a.askPath()
	case wizard.StepProductSelect:
		return a.askProduct()
	case wizard.StepProfileEntry:
		return a.askProfile()
	case wizard.StepAcknowledgement:
		return a.askAcknowledgement()
	case wizard.StepContactEntry:
		return a.askContact(ctx)
	}
	return fmt.Errorf("%w: %s", wizard.ErrWrongStep, step)
}

// ask reads one answer, turning the navigation keywords into errors.
func (a *App) ask(prompt, current string) (string, error) {
	v, err := GetWithDefault(a.reader, prompt, current, a.out)
	if err != nil {
		return "", err
	}
	return v, navigation(v)
}

func (a *App) choose(prompt string, options []string, current string) (string, error) {
	v, err := GetChoice(a.reader, prompt, options, current, a.out)
	var ce *choiceError
	if errors.As(err, &ce) {
		if nav := navigation(ce.input); nav != nil {
			return "", nav
		}
	}
	return v, err
}

func navigation(v string) error {
	switch strings.ToLower(v) {
	case "back":
		return errBack
	case "cancel":
		return errCancel
	}
	return nil
}

func (a *App) askPath() error {
	labels := []string{pathLabels[models.PathFinancial], pathLabels[models.PathBusinessSupport]}
	v, err := a.choose("What are you looking for?", labels, pathLabels[a.wizard.Draft().Path])
	if err != nil {
		return err
	}
	for p, l := range pathLabels {
		if l == v {
			return a.wizard.SelectPath(p)
		}
	}
	return errInvalidChoice
}

func (a *App) askProduct() error {
	d := a.wizard.Draft()
	v, err := a.choose("Choose a product", wizard.Products(d.Path), d.Product)
	if err != nil {
		return err
	}
	if err := a.wizard.SelectProduct(v); err != nil {
		return err
	}
	return a.wizard.Next()
}

func (a *App) askProfile() error {
	p := a.wizard.Draft().Profile
	var err error

	if p.BusinessName, err = a.ask("Business name", p.BusinessName); err != nil {
		return err
	}
	if p.RegNumber, err = a.ask("Registration number (RC/BN)", p.RegNumber); err != nil {
		return err
	}
	if p.Industry, err = a.choose("Industry", wizard.Industries, p.Industry); err != nil {
		return err
	}
	if p.Description, err = a.ask("What do you need the facility or service for?", p.Description); err != nil {
		return err
	}
	registered, err := a.ask("Is the business CAC registered? (y/n)", yesNo(p.Registered))
	if err != nil {
		return err
	}
	p.Registered = strings.HasPrefix(strings.ToLower(registered), "y")

	if err := a.wizard.SetProfile(p); err != nil {
		return err
	}
	return a.wizard.Next()
}

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func (a *App) askAcknowledgement() error {
	printlnFn("Please have the following ready:")
	printList(a.wizard.Checklist())

	v, err := a.ask("I confirm these documents are available (y/n)", "")
	if err != nil {
		return err
	}
	if err := a.wizard.Acknowledge(strings.HasPrefix(strings.ToLower(v), "y")); err != nil {
		return err
	}
	return a.wizard.Next()
}

func (a *App) askContact(ctx context.Context) error {
	d := a.wizard.Draft()
	c := d.Contact
	var err error

	if c.FullName, err = a.ask("Full name", c.FullName); err != nil {
		return err
	}
	if c.Role, err = a.ask("Your role in the business", c.Role); err != nil {
		return err
	}
	if c.Email, err = a.ask("Email", c.Email); err != nil {
		return err
	}
	if c.Phone, err = a.ask("Phone", c.Phone); err != nil {
		return err
	}
	if d.Path == models.PathFinancial {
		if c.BVN, err = a.ask("BVN (11 digits)", c.BVN); err != nil {
			return err
		}
	}

	if err := a.wizard.SetContact(c); err != nil {
		return err
	}

	for {
		err := a.wizard.Submit(ctx)
		if err == nil || errors.Is(err, wizard.ErrIncomplete) {
			return err
		}
		a.flush()
		a.logger.Warn(ctx, "application submit failed", "error", err)
		retry, rerr := GetConfirm(a.reader, "Try again?", a.out)
		if rerr != nil {
			return rerr
		}
		if !retry {
			return errCancel
		}
	}
}
