package proto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode unmarshals raw into v, trims string fields of the known request
// types and validates the result.
func Decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	normalize(v)
	if err := validate.Struct(v); err != nil {
		return describe(err)
	}
	return nil
}

func normalize(v any) {
	switch d := v.(type) {
	case *JoinRoomData:
		d.Name = strings.TrimSpace(d.Name)
		d.Kind = strings.TrimSpace(d.Kind)
		d.RoomID = strings.TrimSpace(d.RoomID)
	case *SendMessageData:
		d.Content = strings.TrimSpace(d.Content)
	case *SetTopicData:
		d.Topic = strings.TrimSpace(d.Topic)
	}
}

// describe turns validator errors into a short client-facing message.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "max":
		return fmt.Errorf("%s is too long (max %s)", field, fe.Param())
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Errorf("%s is invalid", field)
	}
}
