package ioc

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		typ     Type
		wantErr bool
	}{
		{"valid ip", "192.168.1.1", TypeIP, false},
		{"ip out of range octet", "999.1.1.1", TypeIP, true},
		{"valid domain", "example.com", TypeDomain, false},
		{"domain missing tld", "example", TypeDomain, true},
		{"valid md5", "d41d8cd98f00b204e9800998ecf8427e", TypeMD5, false},
		{"md5 wrong length", "d41d8cd98f00b204e98009", TypeMD5, true},
		{"valid sha1", "da39a3ee5e6b4b0d3255bfef95601890afd80709", TypeSHA1, false},
		{"valid sha256", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", TypeSHA256, false},
		{"valid email", "user@example.com", TypeEmail, false},
		{"invalid email", "not-an-email", TypeEmail, true},
		{"valid cve", "CVE-2024-12345", TypeCVE, false},
		{"invalid cve", "CVE-24-1", TypeCVE, true},
		{"valid url", "https://example.com/path", TypeURL, false},
		{"invalid url", "not a url", TypeURL, true},
		{"empty value always invalid", "", TypeIP, true},
		{"unconstrained type accepts anything non-empty", "some-mutex-name", TypeMutex, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.value, tt.typ)
			if tt.wantErr && err == nil {
				t.Errorf("Validate(%q, %v) = nil, want error", tt.value, tt.typ)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate(%q, %v) = %v, want nil", tt.value, tt.typ, err)
			}
		})
	}
}
