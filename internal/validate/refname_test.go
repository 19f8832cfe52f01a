package validate

import (
	"testing"
)

// TestBranchNameFormat tests BranchNameFormat function
func TestBranchNameFormat(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		description string
	}{
		// Valid names
		{
			name:        "simple branch",
			input:       "gh-pages",
			expectError: false,
			description: "typical pages branch should be valid",
		},
		{
			name:        "main branch",
			input:       "main",
			expectError: false,
			description: "plain lowercase name should be valid",
		},
		{
			name:        "hierarchical branch",
			input:       "release/gh-pages",
			expectError: false,
			description: "slash-separated branch should be valid",
		},
		{
			name:        "branch with dots",
			input:       "v1.2-publish",
			expectError: false,
			description: "dots and hyphens should be valid",
		},
		{
			name:        "uppercase branch",
			input:       "Pages",
			expectError: false,
			description: "git branch names are case sensitive and may be uppercase",
		},

		// Invalid names
		{
			name:        "empty string",
			input:       "",
			expectError: true,
			description: "empty string should be invalid",
		},
		{
			name:        "leading hyphen",
			input:       "-pages",
			expectError: true,
			description: "leading hyphen would be parsed as a git flag",
		},
		{
			name:        "contains space",
			input:       "gh pages",
			expectError: true,
			description: "whitespace should be invalid",
		},
		{
			name:        "double dot",
			input:       "gh..pages",
			expectError: true,
			description: "'..' is refused by git",
		},
		{
			name:        "trailing slash",
			input:       "pages/",
			expectError: true,
			description: "trailing slash should be invalid",
		},
		{
			name:        "leading slash",
			input:       "/pages",
			expectError: true,
			description: "leading slash should be invalid",
		},
		{
			name:        "double slash",
			input:       "release//pages",
			expectError: true,
			description: "'//' should be invalid",
		},
		{
			name:        "trailing dot",
			input:       "pages.",
			expectError: true,
			description: "trailing dot is refused by git",
		},
		{
			name:        "lock suffix",
			input:       "pages.lock",
			expectError: true,
			description: "'.lock' suffix is refused by git",
		},
		{
			name:        "tilde character",
			input:       "pages~1",
			expectError: true,
			description: "revision syntax characters should be invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BranchNameFormat(tt.input)

			if tt.expectError && err == nil {
				t.Errorf("BranchNameFormat(%q) expected error: %s", tt.input, tt.description)
			}
			if !tt.expectError && err != nil {
				t.Errorf("BranchNameFormat(%q) unexpected error: %v (%s)", tt.input, err, tt.description)
			}
		})
	}
}

// TestRemoteNameFormat tests RemoteNameFormat function
func TestRemoteNameFormat(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{name: "origin", input: "origin", expectError: false},
		{name: "upstream", input: "upstream", expectError: false},
		{name: "name with digits", input: "backup2", expectError: false},
		{name: "name with dot", input: "gh.pages", expectError: false},
		{name: "empty string", input: "", expectError: true},
		{name: "leading hyphen", input: "-origin", expectError: true},
		{name: "contains slash", input: "origin/pages", expectError: true},
		{name: "contains space", input: "my origin", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RemoteNameFormat(tt.input)

			if tt.expectError && err == nil {
				t.Errorf("RemoteNameFormat(%q) expected error, got none", tt.input)
			}
			if !tt.expectError && err != nil {
				t.Errorf("RemoteNameFormat(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}
