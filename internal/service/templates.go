package service

import (
	"fmt"
	"strings"

	"enrolpay/internal/domain"
)

// renderInstallmentMessage builds the subject and body for a per-student
// alert. SMS bodies are kept short; the subject is ignored by that channel.
func renderInstallmentMessage(typ domain.NotificationType, channel domain.NotificationChannel, inst *domain.InstallmentDetail) (subject, body string) {
	dueDate := inst.StudentDueDate.Format("2 Jan 2006")
	amount := inst.Amount.StringFixed(2)
	name := inst.StudentName()

	if channel == domain.ChannelSMS {
		switch typ {
		case domain.NotificationTypeOverdue:
			return "", fmt.Sprintf("Hi %s, your installment of %s due %s is overdue. Please arrange payment or contact your agent.", name, amount, dueDate)
		default:
			return "", fmt.Sprintf("Hi %s, a reminder that your installment of %s is due on %s.", name, amount, dueDate)
		}
	}

	switch typ {
	case domain.NotificationTypeOverdue:
		subject = fmt.Sprintf("Overdue installment: %s (%s)", name, amount)
		body = fmt.Sprintf(
			"Installment #%d for %s is overdue.\n\nAmount: %s\nStudent due date: %s\nCollege: %s\n\nPlease follow up with the student.",
			inst.InstallmentNumber, name, amount, dueDate, inst.CollegeName)
	default:
		subject = fmt.Sprintf("Installment due soon: %s (%s)", name, amount)
		body = fmt.Sprintf(
			"Installment #%d for %s is due on %s.\n\nAmount: %s\nCollege: %s\n\nThis is an advance reminder.",
			inst.InstallmentNumber, name, dueDate, amount, inst.CollegeName)
	}
	return subject, body
}

// renderCollegeDigest builds the one-per-college summary of its overdue
// installments.
func renderCollegeDigest(collegeName string, rows []*domain.InstallmentDetail) (subject, body string) {
	subject = fmt.Sprintf("Overdue installments summary: %s", collegeName)

	var b strings.Builder
	fmt.Fprintf(&b, "The following %d installment(s) for %s are overdue:\n\n", len(rows), collegeName)
	for _, inst := range rows {
		fmt.Fprintf(&b, "- %s: installment #%d, %s, due %s\n",
			inst.StudentName(), inst.InstallmentNumber, inst.Amount.StringFixed(2),
			inst.StudentDueDate.Format("2 Jan 2006"))
	}
	b.WriteString("\nPlease reconcile against your records.")
	return subject, b.String()
}
