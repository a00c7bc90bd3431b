package dto

// EmployeeRequest is the write payload for create and update. Pointer
// fields distinguish "absent" from "zero" so updates can merge onto
// the stored record.
type EmployeeRequest struct {
	EmployeeID  *string  `json:"employeeId"`
	Name        *string  `json:"name"`
	Email       *string  `json:"email"`
	Phone       *string  `json:"phone"`
	Address     *string  `json:"address"`
	Department  *string  `json:"department"`
	Designation *string  `json:"designation"`
	JoiningDate *string  `json:"joiningDate"`
	Salary      *float64 `json:"salary"`
	Status      *string  `json:"status"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type UpdateProfileRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
