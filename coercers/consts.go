package coercers

const (
	ErrMsgParamEmpty    = "given parameter is empty"
	ErrMsgBadDateFormat = "value does not match the expected date/time layout"
)
