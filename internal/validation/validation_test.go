package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidUsername(t *testing.T) {
	valid := []string{"alice", "bob-2", "staff_user", "a1.b2", "ABC"}
	for _, v := range valid {
		assert.True(t, IsValidUsername(v), v)
	}

	invalid := []string{"", "ab", ".leading", "with space", "почта", strings.Repeat("a", 40)}
	for _, v := range invalid {
		assert.False(t, IsValidUsername(v), v)
	}
}

func TestIsValidMobile(t *testing.T) {
	assert.True(t, IsValidMobile("+15551234567"))
	assert.True(t, IsValidMobile("+442071838750"))

	invalid := []string{"", "15551234567", "+0123", "+1555123456789012345", "555-1234"}
	for _, v := range invalid {
		assert.False(t, IsValidMobile(v), v)
	}
}

func TestIsValidFilename(t *testing.T) {
	valid := []string{"clip.mp4", "Holiday_2025.mkv", "a.webm"}
	for _, v := range valid {
		assert.True(t, IsValidFilename(v), v)
	}

	invalid := []string{
		"",
		"../etc/passwd",
		"dir/clip.mp4",
		".hidden",
		"clip.mp4.",
		"con.mp4",
		"bad\x00name.mp4",
		strings.Repeat("a", 260) + ".mp4",
	}
	for _, v := range invalid {
		assert.False(t, IsValidFilename(v), v)
	}
}

func TestContainsUnicodeAttack(t *testing.T) {
	assert.True(t, ContainsUnicodeAttack("evil‮txt.mp4"))
	assert.True(t, ContainsUnicodeAttack("zero​width"))
	assert.False(t, ContainsUnicodeAttack("plain name"))
	assert.False(t, ContainsUnicodeAttack(""))
}

func TestValidateDeviceName(t *testing.T) {
	assert.NoError(t, ValidateDeviceName("Living Room TV"))

	err := ValidateDeviceName("")
	require.Error(t, err)
	var vErr ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "device_name", vErr.Field)

	assert.Error(t, ValidateDeviceName(strings.Repeat("x", 80)))
}

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, ValidateTitle("My Holiday Clip"))
	assert.Error(t, ValidateTitle("  "))
	assert.Error(t, ValidateTitle(strings.Repeat("x", 250)))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("longenough"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 80)))
}
