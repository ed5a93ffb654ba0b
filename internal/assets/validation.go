package assets

import "fmt"

// ValidateAssetName accepts names made of ASCII letters, digits, '-' and '_'.
// Anything else (separators, dots, NUL, spaces) could select a file other than
// {dir}/{name}{ext} and yields ErrInvalidAssetName.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
