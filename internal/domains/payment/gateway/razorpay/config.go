package razorpay

import (
	"fmt"
)

// =====================================================
// RAZORPAY CONFIGURATION
// =====================================================

type Config struct {
	KeyID     string // Publishable key id (provided by Razorpay dashboard)
	KeySecret string // Secret key for API auth and HMAC-SHA256 signatures
	APIURL    string // Razorpay API base URL
	Currency  string // Settlement currency (default: "INR")
}

// NewConfig creates Razorpay configuration
func NewConfig(keyID, keySecret, apiURL string) *Config {
	if apiURL == "" {
		apiURL = "https://api.razorpay.com"
	}
	return &Config{
		KeyID:     keyID,
		KeySecret: keySecret,
		APIURL:    apiURL,
		Currency:  "INR",
	}
}

// Validate validates configuration
func (c *Config) Validate() error {
	if c.KeyID == "" {
		return fmt.Errorf("Razorpay KeyID is required")
	}
	if c.KeySecret == "" {
		return fmt.Errorf("Razorpay KeySecret is required")
	}
	if c.APIURL == "" {
		return fmt.Errorf("Razorpay APIURL is required")
	}
	return nil
}

// Configured reports whether both credentials are present
func (c *Config) Configured() bool {
	return c.KeyID != "" && c.KeySecret != ""
}

// OrdersURL returns the Orders API endpoint
func (c *Config) OrdersURL() string {
	return c.APIURL + "/v1/orders"
}
