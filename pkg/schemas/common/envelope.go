package common

type Envelope[T any] struct {
	Meta Meta `json:"meta"`
	Data T    `json:"data"`
}

// Wrap builds an envelope with fresh metadata around a payload.
func Wrap[T any](eventType, producer string, data T) Envelope[T] {
	return Envelope[T]{
		Meta: NewMeta(eventType, producer),
		Data: data,
	}
}
