package models

import "time"

// Enrollment links a user to a purchased or assigned course. At most one
// enrollment may exist per (courseId, userId) pair.
type Enrollment struct {
	CourseID       string    `json:"courseId"`
	UserID         string    `json:"userId"` // user's email
	UserName       string    `json:"userName"`
	EnrollmentDate time.Time `json:"enrollmentDate"`
}

// PaymentInfo holds the card fields entered during checkout. The payment
// itself is simulated, the fields are only validated.
type PaymentInfo struct {
	CardNumber string `json:"cardNumber"`
	CardHolder string `json:"cardHolder"`
	ExpiryDate string `json:"expiryDate"` // MM/YY
	CVV        string `json:"cvv"`
}
