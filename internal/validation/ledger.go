package validation

// RegisterUserInput is the body of a registration request.
type RegisterUserInput struct {
	Email string `json:"email"`
}

// TransferInput is the body of a transfer request.
type TransferInput struct {
	FromAddress string  `json:"from_address"`
	ToAddress   string  `json:"to_address"`
	Amount      float64 `json:"transaction_amount"`
}

// UserRegistration validates a registration request.
func (v *Validator) UserRegistration(in *RegisterUserInput) {
	v.Required("email", in.Email)
	if in.Email != "" {
		v.Email("email", in.Email)
	}
}

// Transfer validates a transfer request.
func (v *Validator) Transfer(in *TransferInput) {
	v.Required("from_address", in.FromAddress)
	v.Required("to_address", in.ToAddress)
	v.FiniteAmount("transaction_amount", in.Amount)
}
