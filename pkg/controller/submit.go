package controller

import "context"

// Submit runs a submission round.
//
// Fields that are modified or currently invalid are re-validated first;
// unmodified valid fields cannot have become invalid and are skipped. When
// the aggregate is invalid the collaborator is never invoked and Submit
// returns false with a nil error; the failure already lives on the fields.
//
// On collaborator failure the error text becomes the form's global error,
// field-level state is untouched, and the form stays editable. On success
// the form and every field are flagged submitted.
//
// A Submit while another is in flight returns ErrSubmitInFlight.
func (c *Controller) Submit(ctx context.Context) (bool, error) {
	if c.state.IsSubmitting() {
		return false, ErrSubmitInFlight
	}
	if c.submitFn == nil {
		return false, ErrNoSubmitHandler
	}
	if ctx == nil {
		ctx = context.Background()
	}

	wasValid := c.state.IsValid()
	for _, id := range c.state.FieldsNeedingValidation() {
		def := c.index[id]
		fs, _ := c.state.Field(id)
		before := fs.Error()
		fs.Apply(fs.Value(), c.validate(def, fs.Value()))
		if fs.Error() != before {
			c.publishField(fs)
		}
	}
	if c.state.IsValid() != wasValid {
		c.publishForm(false)
	}
	if !c.state.IsValid() {
		return false, nil
	}

	c.state.SetSubmitting(true)
	c.publishForm(false)

	err := c.submitFn(ctx, c.outputValues())

	c.state.SetSubmitting(false)
	if err != nil {
		c.state.SetGlobalError(err.Error())
		c.publishForm(false)
		return false, nil
	}

	c.state.SetGlobalError("")
	c.state.MarkSubmitted()
	for _, id := range c.state.FieldIDs() {
		fs, _ := c.state.Field(id)
		c.publishField(fs)
	}
	c.publishForm(false)
	return true, nil
}

// outputValues projects field id to value for fields flagged for output.
// Excluded fields still participate in validation; they just never leave the
// form.
func (c *Controller) outputValues() map[string]string {
	out := make(map[string]string)
	for _, def := range c.defs {
		if !def.IncludeInOutput {
			continue
		}
		fs, _ := c.state.Field(def.ID)
		out[def.ID] = fs.Value()
	}
	return out
}
