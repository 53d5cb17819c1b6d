package schemas

// ProjectInput holds the validated fields of a project payload.
type ProjectInput struct {
	Name           *string
	Description    *string
	DescriptionSet bool
}

// LoadProject validates a raw project payload. created_by is server-assigned
// and ignored here; the service forces it to the acting user.
func LoadProject(payload map[string]any, partial bool) (*ProjectInput, error) {
	fe := fieldErrors{}
	input := &ProjectInput{}

	input.Name = loadString(payload, "name", !partial, fe)
	input.Description, input.DescriptionSet = loadNullableText(payload, "description", fe)

	if err := fe.asError(); err != nil {
		return nil, err
	}
	return input, nil
}
