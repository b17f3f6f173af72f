package surface

// Transfer is the data-transfer object carried by clipboard and drag
// operations. Payloads live only for the duration of the operation.
type Transfer struct {
	payloads map[string]string
	order    []string
}

// NewTransfer builds an empty transfer object.
func NewTransfer() *Transfer {
	return &Transfer{payloads: map[string]string{}}
}

// Set stores a payload under the given type, keeping first-set order.
func (t *Transfer) Set(payloadType, data string) {
	if _, ok := t.payloads[payloadType]; !ok {
		t.order = append(t.order, payloadType)
	}
	t.payloads[payloadType] = data
}

// Get returns the payload stored under the given type, or "".
func (t *Transfer) Get(payloadType string) string {
	if t == nil {
		return ""
	}
	return t.payloads[payloadType]
}

// Types lists the payload types present, in the order they were set.
func (t *Transfer) Types() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// IsEmpty reports whether no payload has been written.
func (t *Transfer) IsEmpty() bool {
	return t == nil || len(t.order) == 0
}
