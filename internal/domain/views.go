package domain

import "github.com/google/uuid"

// InstallmentDetail joins an installment with the student, plan and college
// context the engines need for audit entries and recipient resolution.
type InstallmentDetail struct {
	Installment

	StudentID        uuid.UUID `db:"student_id" json:"student_id"`
	StudentFirstName string    `db:"student_first_name" json:"student_first_name"`
	StudentLastName  string    `db:"student_last_name" json:"student_last_name"`
	StudentEmail     string    `db:"student_email" json:"student_email"`
	StudentPhone     string    `db:"student_phone" json:"student_phone"`
	AgentEmail       string    `db:"agent_email" json:"agent_email"`

	CollegeID    uuid.UUID `db:"college_id" json:"college_id"`
	CollegeName  string    `db:"college_name" json:"college_name"`
	CollegeEmail string    `db:"college_email" json:"college_email"`
}

// StudentName returns the student's display name.
func (d *InstallmentDetail) StudentName() string {
	if d.StudentFirstName == "" {
		return d.StudentLastName
	}
	if d.StudentLastName == "" {
		return d.StudentFirstName
	}
	return d.StudentFirstName + " " + d.StudentLastName
}
