// Package services отправляет почтовые уведомления по событиям заявок.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/course-portal/internal/lib/sl"
	"github.com/magabrotheeeer/course-portal/internal/lib/smtp"
	"github.com/magabrotheeeer/course-portal/internal/models"
)

// SenderService формирует и отправляет письма пользователям портала.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport smtp.TransportInterface) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendInfoApplicationCreated отправляет подтверждение о принятой заявке.
func (s *SenderService) SendInfoApplicationCreated(body []byte) error {
	var message models.ApplicationInfo
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("Failed to unmarshal message body", "error", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := fmt.Sprintf("Заявка №%d принята", message.ID)
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nВаша заявка №%d на курс «%s» принята и ожидает обработки.\n\nМы свяжемся с вами в ближайшее время.",
		message.FullName, message.ID, message.CourseTitle)

	return s.sendEmail(to, subject, bodyText)
}

// SendInfoStatusChanged отправляет уведомление о смене статуса заявки.
func (s *SenderService) SendInfoStatusChanged(body []byte) error {
	var message models.ApplicationInfo
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("Failed to unmarshal message body", "error", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := fmt.Sprintf("Статус заявки №%d изменён", message.ID)
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nСтатус вашей заявки №%d на курс «%s» изменён: %s.",
		message.FullName, message.ID, message.CourseTitle, statusText(message.Status))

	return s.sendEmail(to, subject, bodyText)
}

// SendInfoUpcomingCourse отправляет напоминание о завтрашнем начале обучения.
func (s *SenderService) SendInfoUpcomingCourse(body []byte) error {
	var message models.ApplicationInfo
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("Failed to unmarshal message body", "error", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := fmt.Sprintf("Обучение по курсу «%s» начинается завтра", message.CourseTitle)
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nНапоминаем, что обучение по курсу «%s» по вашей заявке №%d начинается завтра.",
		message.FullName, message.CourseTitle, message.ID)

	return s.sendEmail(to, subject, bodyText)
}

func statusText(status string) string {
	switch status {
	case models.StatusNew:
		return "новая"
	case models.StatusInProgress:
		return "в работе"
	case models.StatusCompleted:
		return "завершена"
	default:
		return status
	}
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("Failed to connect to SMTP server", "error", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("Failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("Failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("Failed to get Data writer", "error", sl.Err(err))
		return err
	}

	_, err = wc.Write([]byte(msg))
	if err != nil {
		s.log.Error("Failed to write email body", "error", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("Failed to close Data writer", "error", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("Failed to quit SMTP client", "error", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
