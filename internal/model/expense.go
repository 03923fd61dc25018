package model

import "time"

// Expense reimbursement request states. A request starts as pending
// and can only be deleted by its owner while still pending.
const (
	ExpenseStatusPending  = "pending"
	ExpenseStatusApproved = "approved"
	ExpenseStatusRejected = "rejected"
)

// Expense models a row in the `expense_reimbursement` table.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – user that filed the request.
//  Date          – day the expense occurred.
//  Amount        – amount in euro, two decimal places.
//  Category      – expense category (travel, meals, ...).
//  PaymentMethod – how the expense was paid (cash, card, ...).
//  Description   – free-form note.
//  ReceiptRef    – server-generated reference for the receipt.
//  Status        – pending | approved | rejected.
//  CreatedAt     – creation timestamp.
type Expense struct {
	ID            uint64    // expense_reimbursement.id
	UserID        uint64    // expense_reimbursement.user_id
	Date          time.Time // expense_reimbursement.date
	Amount        float64   // expense_reimbursement.amount
	Category      string    // expense_reimbursement.category
	PaymentMethod string    // expense_reimbursement.payment_method
	Description   string    // expense_reimbursement.description
	ReceiptRef    string    // expense_reimbursement.receipt_ref
	Status        string    // expense_reimbursement.status
	CreatedAt     time.Time // expense_reimbursement.created_at
}
