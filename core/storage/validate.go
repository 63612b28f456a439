package storage

// RequireName fails with a validation error when value is blank.
func RequireName(op, field, value string) error {
	if isBlank(value) {
		return Validation(op, value, field+" must not be blank")
	}
	return nil
}

// RequireContent fails when content is empty.
func RequireContent(op, objectName string, content []byte) error {
	if len(content) == 0 {
		return Validation(op, objectName, "content must not be empty")
	}
	return nil
}
