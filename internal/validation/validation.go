package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ValidationError представляет ошибку валидации
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error реализует интерфейс error
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error in field '%s': %s", e.Field, e.Message)
}

// UsernameRegex допускает латиницу, цифры, точку, дефис и подчеркивание
var UsernameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{2,31}$`)

// MobileRegex проверяет номер в формате E.164
var MobileRegex = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

// FilenameRegex содержит регулярное выражение для базовой валидации имен файлов
var FilenameRegex = regexp.MustCompile(`^[^<>:"|?*\\]+$`)

// UnsafeFilenamePatterns содержит паттерны для обнаружения небезопасных имен файлов
var UnsafeFilenamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`[/\\]`),       // Слэши
	regexp.MustCompile(`\.\.`),        // Родительский каталог
	regexp.MustCompile(`^\.`),         // Скрытые файлы
	regexp.MustCompile(`\.$`),         // Точка в конце
	regexp.MustCompile(`^\s+|\s+$`),   // Пробелы по краям
	regexp.MustCompile(`[\x00-\x1f]`), // Контрольные символы
	regexp.MustCompile(`(?i)^(con|prn|aux|nul|com[1-9]|lpt[1-9])(\.|$)`),
}

// UnicodeAttackPatterns содержит паттерны для обнаружения Unicode-атак
var UnicodeAttackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[\x{202A}-\x{202E}]`), // RTL override
	regexp.MustCompile(`[\x{2066}-\x{2069}]`),
	regexp.MustCompile(`[\x{200B}-\x{200F}]`), // Нулевые символы
	regexp.MustCompile(`[\x{FE00}-\x{FE0F}]`),
	regexp.MustCompile(`[\x{FFF9}-\x{FFFB}]`),
	regexp.MustCompile(`[\x{FF00}-\x{FFEF}]`), // Полноширинные символы
}

// ContainsUnicodeAttack проверяет наличие Unicode-атак в строке
func ContainsUnicodeAttack(input string) bool {
	if input == "" {
		return false
	}
	if !utf8.ValidString(input) {
		return true
	}
	for _, pattern := range UnicodeAttackPatterns {
		if pattern.MatchString(input) {
			return true
		}
	}
	return false
}

// IsValidUsername проверяет валидность имени пользователя
func IsValidUsername(username string) bool {
	return UsernameRegex.MatchString(username) && !ContainsUnicodeAttack(username)
}

// ValidateUsername выполняет валидацию имени пользователя и возвращает ошибку
func ValidateUsername(username string) error {
	if !IsValidUsername(username) {
		return ValidationError{
			Field:   "username",
			Message: "must be 3-32 characters: letters, digits, dot, dash or underscore",
		}
	}
	return nil
}

// IsValidMobile проверяет номер телефона в формате E.164
func IsValidMobile(mobile string) bool {
	return MobileRegex.MatchString(mobile)
}

// ValidateMobile выполняет валидацию номера телефона и возвращает ошибку
func ValidateMobile(mobile string) error {
	if !IsValidMobile(mobile) {
		return ValidationError{
			Field:   "mobile_number",
			Message: "must be an international number like +15551234567",
		}
	}
	return nil
}

// IsValidFilename проверяет валидность имени файла
func IsValidFilename(filename string) bool {
	filename = strings.TrimSpace(filename)
	if filename == "" || len(filename) > 255 {
		return false
	}
	if !FilenameRegex.MatchString(filename) {
		return false
	}
	for _, pattern := range UnsafeFilenamePatterns {
		if pattern.MatchString(filename) {
			return false
		}
	}
	return !ContainsUnicodeAttack(filename)
}

// ValidateFilename выполняет валидацию имени файла и возвращает ошибку
func ValidateFilename(filename string) error {
	if !IsValidFilename(filename) {
		return ValidationError{
			Field:   "filename",
			Message: "is not a valid filename",
		}
	}
	return nil
}

// ValidateDeviceName проверяет отображаемое имя устройства клиента
func ValidateDeviceName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "device_name", Message: "is required"}
	}
	if utf8.RuneCountInString(name) > 64 {
		return ValidationError{Field: "device_name", Message: "must be at most 64 characters"}
	}
	if ContainsUnicodeAttack(name) {
		return ValidationError{
			Field:   "device_name",
			Message: "contains potentially dangerous characters",
		}
	}
	return nil
}

// ValidateTitle проверяет название видео
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ValidationError{Field: "title", Message: "is required"}
	}
	if utf8.RuneCountInString(title) > 200 {
		return ValidationError{Field: "title", Message: "must be at most 200 characters"}
	}
	if ContainsUnicodeAttack(title) {
		return ValidationError{
			Field:   "title",
			Message: "contains potentially dangerous characters",
		}
	}
	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "must be at least 8 characters"}
	}
	if len(password) > 72 { // bcrypt input limit
		return ValidationError{Field: "password", Message: "must be at most 72 characters"}
	}
	return nil
}
