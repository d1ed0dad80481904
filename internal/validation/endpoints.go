package validation

import (
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("asset_url", validateAssetURL)
}

// ValidateEndpoints checks that every configured endpoint is an absolute
// http(s) URL with a host. Run before any network activity so a bad
// configuration fails fast.
func ValidateEndpoints(urls ...string) error {
	for _, u := range urls {
		if err := validate.Var(u, "required,asset_url"); err != nil {
			return fmt.Errorf("invalid endpoint %q: %w", u, err)
		}
	}
	return nil
}

func validateAssetURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	return u.Host != ""
}
