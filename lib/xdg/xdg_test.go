package xdg

import (
	"runtime"
	"testing"
)

func TestConfigPath(t *testing.T) {
	t.Setenv("HOME", "/home/user")
	vectors := []struct {
		args     []string
		env      map[string]string
		expected map[string]string
	}{
		{
			args: []string{"nm-livesearch", "nm-livesearch.conf"},
			expected: map[string]string{
				"":       "/home/user/.config/nm-livesearch/nm-livesearch.conf",
				"darwin": "/home/user/Library/Preferences/nm-livesearch/nm-livesearch.conf",
			},
		},
		{
			args:     []string{"nm-livesearch", "nm-livesearch.conf"},
			env:      map[string]string{"XDG_CONFIG_HOME": "/users/x/.config"},
			expected: map[string]string{"": "/users/x/.config/nm-livesearch/nm-livesearch.conf"},
		},
		{
			args:     []string{"/etc/nm-livesearch.conf"},
			expected: map[string]string{"": "/etc/nm-livesearch.conf"},
		},
		{
			args:     []string{},
			env:      map[string]string{"XDG_CONFIG_HOME": "/blah"},
			expected: map[string]string{"": "/blah"},
		},
	}
	for _, vec := range vectors {
		expected, found := vec.expected[runtime.GOOS]
		if !found {
			expected = vec.expected[""]
		}
		t.Run(expected, func(t *testing.T) {
			for key, value := range vec.env {
				t.Setenv(key, value)
			}
			res := ConfigPath(vec.args...)
			if res != expected {
				t.Errorf("got %q expected %q", res, expected)
			}
		})
	}
}

func TestConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	expected := "/cfg/nm-livesearch/nm-livesearch.conf"
	if res := ConfigFile(); res != expected {
		t.Errorf("got %q expected %q", res, expected)
	}
}
