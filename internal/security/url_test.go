package security

import "testing"

func TestValidateOutboundURLBlocksLocalAddresses(t *testing.T) {
	for _, rawURL := range []string{
		"http://127.0.0.1:8080/admin",
		"http://localhost/",
		"http://router.local/status",
		"http://10.1.2.3/",
		"http://192.168.1.1/",
		"http://169.254.169.254/latest/meta-data",
		"http://[::1]/",
		"http://0.0.0.0/",
	} {
		if err := ValidateOutboundURL(rawURL); err == nil {
			t.Fatalf("expected %q to be blocked", rawURL)
		}
	}
}

func TestValidateOutboundURLRejectsBadSchemes(t *testing.T) {
	for _, rawURL := range []string{
		"ftp://example.com/file",
		"file:///etc/passwd",
		"",
		"://broken",
	} {
		if err := ValidateOutboundURL(rawURL); err == nil {
			t.Fatalf("expected %q to be rejected", rawURL)
		}
	}
}

func TestValidateOutboundURLAllowsPublicIP(t *testing.T) {
	if err := ValidateOutboundURL("https://8.8.8.8/"); err != nil {
		t.Fatalf("expected public ip allowed: %v", err)
	}
}
