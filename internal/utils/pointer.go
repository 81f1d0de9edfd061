package utils

func StringToPointer(s string) *string {
	return &s
}

func IntToPointer(i int) *int {
	return &i
}

func Float32ToPointer(f float32) *float32 {
	return &f
}

// NonEmptyStringPointer returns nil for an empty or blank-only string.
func NonEmptyStringPointer(s string) *string {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return &s
		}
	}
	return nil
}
