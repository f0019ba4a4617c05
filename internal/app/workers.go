package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
	"github.com/Omar96MJ/sanad-sub001/internal/service/appointment"
	"github.com/Omar96MJ/sanad-sub001/internal/service/notification"
	"github.com/Omar96MJ/sanad-sub001/internal/store"
	"github.com/Omar96MJ/sanad-sub001/pkg/constants"
	"github.com/Omar96MJ/sanad-sub001/pkg/email"
	svcsms "github.com/Omar96MJ/sanad-sub001/pkg/sms"
)

// WorkerModule registers all NATS event workers.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc       fx.Lifecycle
	NC       *nats.Conn
	Convs    *store.ConversationStore
	Profiles *store.ProfileStore
	ApptSvc  appointment.Service
	NotifSvc notification.Service
	Email    *email.Client
	SMS      *svcsms.Client
}

func RegisterWorkers(p WorkerParams) {
	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			startNotificationWorker(p.NC, p.Convs, p.NotifSvc)
			startContactWorker(p.NC, p.ApptSvc, p.NotifSvc, p.Profiles, p.Email, p.SMS)
			startSyncWorker(p.NC, p.ApptSvc)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Drain handled by ProvideNatsClient
			return nil
		},
	})
}

func parseBodyID(msg *nats.Msg) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(string(msg.Data)))
	return id, err == nil
}

// wantsStatus reports whether a contact subscription filtered to only should
// handle an appointment in the given status. An empty filter matches all.
func wantsStatus(only, status model.AppointmentStatus) bool {
	return only == "" || status == only
}

// ---------------------------------------------------------------------------
// notification_worker
// ---------------------------------------------------------------------------

func startNotificationWorker(nc *nats.Conn, convs *store.ConversationStore, notifSvc notification.Service) {
	// New message notifications for the other participant.
	_, err := nc.Subscribe(constants.SubjectMessageNew+".*", func(msg *nats.Msg) {
		parts := strings.Split(msg.Subject, ".")
		if len(parts) < 4 {
			return
		}
		convID, err := uuid.Parse(parts[3])
		if err != nil {
			return
		}
		msgID, ok := parseBodyID(msg)
		if !ok {
			return
		}

		ctx := context.Background()

		conv, err := convs.GetByID(ctx, convID)
		if err != nil {
			slog.Warn("notification_worker: conversation not found", "id", convID, "err", err)
			return
		}
		message, err := convs.GetMessage(ctx, convID, msgID)
		if err != nil {
			slog.Warn("notification_worker: message not found", "id", msgID, "err", err)
			return
		}

		_, err = notifSvc.Create(ctx, notification.CreateRequest{
			UserID: conv.Other(message.SenderID),
			Type:   "message_new",
			Title:  "رسالة جديدة",
			Data:   map[string]any{"conversation_id": conv.ID.String()},
		})
		if err != nil {
			slog.Warn("notification_worker: create notification failed", "err", err)
		}
	})
	if err != nil {
		slog.Error("notification_worker: subscribe message.new failed", "err", err)
	}

	slog.Info("notification_worker: started")
}

// ---------------------------------------------------------------------------
// contact_worker (email + sms + in-app notification on appointment events)
// ---------------------------------------------------------------------------

func startContactWorker(nc *nats.Conn, apptSvc appointment.Service, notifSvc notification.Service, profiles *store.ProfileStore, emailCli *email.Client, smsCli *svcsms.Client) {
	// onlyStatus filters subjects that fire for several transitions, such as
	// appointment.updated, down to the one this contact cares about.
	subscribe := func(subject, notifType, notifTitle string, build func(email.AppointmentEmailData) email.Message, withSMS bool, onlyStatus model.AppointmentStatus) {
		_, err := nc.Subscribe(subject+".*", func(msg *nats.Msg) {
			apptID, ok := parseBodyID(msg)
			if !ok {
				return
			}

			ctx := context.Background()

			appt, err := apptSvc.GetByID(ctx, apptID)
			if err != nil {
				slog.Warn("contact_worker: appointment not found", "id", apptID, "err", err)
				return
			}
			if !wantsStatus(onlyStatus, appt.Status) {
				return
			}
			patient, err := profiles.GetUserByID(ctx, appt.PatientID)
			if err != nil {
				slog.Warn("contact_worker: patient not found", "id", appt.PatientID, "err", err)
				return
			}

			doctorName := "Unknown"
			if doctor, err := profiles.GetDoctorByID(ctx, appt.DoctorID); err == nil {
				doctorName = doctor.DisplayName
			}

			_, err = notifSvc.Create(ctx, notification.CreateRequest{
				UserID: appt.PatientID,
				Type:   notifType,
				Title:  notifTitle,
				Data:   map[string]any{"appointment_id": appt.ID.String()},
			})
			if err != nil {
				slog.Warn("contact_worker: create notification failed", "err", err)
			}

			m := build(email.AppointmentEmailData{
				PatientName: patient.Name,
				Email:       patient.Email,
				DoctorName:  doctorName,
				SessionDate: appt.SessionDate,
				SessionType: string(appt.SessionType),
			})
			if err := emailCli.Send(ctx, m); err != nil {
				slog.Warn("contact_worker: email send failed", "appointment_id", apptID, "err", err)
			}

			if withSMS && patient.Phone != nil {
				when := appt.SessionDate.Format("2006-01-02 15:04")
				if err := smsCli.SendAppointmentReminder(ctx, *patient.Phone, doctorName, when); err != nil {
					slog.Warn("contact_worker: sms send failed", "appointment_id", apptID, "err", err)
				}
			}
		})
		if err != nil {
			slog.Error("contact_worker: subscribe failed", "subject", subject, "err", err)
		}
	}

	subscribe(constants.SubjectAppointmentCreated, "appointment_created", "تم حجز الجلسة",
		email.BuildAppointmentBookedEmail, true, "")
	subscribe(constants.SubjectAppointmentCancelled, "appointment_cancelled", "تم إلغاء الجلسة",
		email.BuildAppointmentCancelledEmail, false, "")
	subscribe(constants.SubjectAppointmentUpdated, "appointment_rescheduled", "تم تغيير موعد الجلسة",
		email.BuildAppointmentRescheduledEmail, true, model.StatusRescheduled)

	slog.Info("contact_worker: started")
}

// ---------------------------------------------------------------------------
// sync_worker (patient view repair after status changes)
// ---------------------------------------------------------------------------

func startSyncWorker(nc *nats.Conn, apptSvc appointment.Service) {
	_, err := nc.Subscribe(constants.SubjectAppointmentUpdated+".*", func(msg *nats.Msg) {
		apptID, ok := parseBodyID(msg)
		if !ok {
			return
		}
		if err := apptSvc.SyncPatientView(context.Background(), apptID); err != nil {
			slog.Warn("sync_worker: patient view sync failed", "appointment_id", apptID, "err", err)
		}
	})
	if err != nil {
		slog.Error("sync_worker: subscribe appointment.updated failed", "err", err)
	}

	slog.Info("sync_worker: started")
}
