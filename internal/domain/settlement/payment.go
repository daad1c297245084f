package settlement

import "github.com/BruksfildServices01/barber-club/internal/httperr"

type PaymentMethod string

const (
	MethodCash              PaymentMethod = "cash"
	MethodPix               PaymentMethod = "pix"
	MethodCreditCard        PaymentMethod = "credit_card"
	MethodDebitCard         PaymentMethod = "debit_card"
	MethodMembershipBalance PaymentMethod = "membership_balance"
)

var PaymentMethods = []PaymentMethod{
	MethodCash,
	MethodPix,
	MethodCreditCard,
	MethodDebitCard,
	MethodMembershipBalance,
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for _, m := range PaymentMethods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", httperr.Validation("invalid_payment_method")
}

const (
	TransactionPaid = "paid"

	CommissionPending = "pending"
	CommissionPaid    = "paid"
)
