package controllers

import (
	"net/http"

	"github.com/robertocantu/ironclub-backend/api/responses"
	"github.com/robertocantu/ironclub-backend/api/validators"
	"github.com/robertocantu/ironclub-backend/internal/members"
	pkgerrors "github.com/robertocantu/ironclub-backend/pkg/errors"
	"github.com/robertocantu/ironclub-backend/pkg/logger"
)

// MemberRequest is the intake payload for creating or replacing a member.
type MemberRequest struct {
	FullName          string  `json:"full_name" validate:"required,max=200"`
	Email             string  `json:"email" validate:"required,email"`
	Phone             string  `json:"phone" validate:"required,max=40"`
	Age               int     `json:"age" validate:"required,gt=0,max=120"`
	Gender            string  `json:"gender" validate:"required,max=40"`
	HeightCM          float64 `json:"height_cm" validate:"required,gt=0"`
	WeightKG          float64 `json:"weight_kg" validate:"required,gt=0"`
	Goal              string  `json:"goal" validate:"omitempty,max=100"`
	Experience        string  `json:"experience" validate:"omitempty,max=100"`
	PreferredTime     string  `json:"preferred_time" validate:"omitempty,max=100"`
	MedicalConditions string  `json:"medical_conditions" validate:"omitempty,max=1000"`
	Address           string  `json:"address" validate:"omitempty,max=500"`
	EmergencyContact  string  `json:"emergency_contact" validate:"required,max=200"`
	MembershipPlan    string  `json:"membership_plan" validate:"required,max=100"`
}

func toMemberInput(payload MemberRequest) members.MemberInput {
	return members.MemberInput{
		FullName:          payload.FullName,
		Email:             payload.Email,
		Phone:             payload.Phone,
		Age:               payload.Age,
		Gender:            payload.Gender,
		HeightCM:          payload.HeightCM,
		WeightKG:          payload.WeightKG,
		Goal:              payload.Goal,
		Experience:        payload.Experience,
		PreferredTime:     payload.PreferredTime,
		MedicalConditions: payload.MedicalConditions,
		Address:           payload.Address,
		EmergencyContact:  payload.EmergencyContact,
		MembershipPlan:    payload.MembershipPlan,
	}
}

func MemberCreate(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "members service unavailable"))
			return
		}

		var payload MemberRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		member, err := svc.CreateMember(r.Context(), toMemberInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, member)
	}
}

func MemberGet(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "members service unavailable"))
			return
		}

		id, err := validators.ParseURLParamInt64(r, "memberId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		member, err := svc.GetMember(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, member)
	}
}

func MemberList(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "members service unavailable"))
			return
		}

		list, err := svc.ListMembers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"members": list,
			"count":   len(list),
		})
	}
}

func MemberUpdate(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "members service unavailable"))
			return
		}

		id, err := validators.ParseURLParamInt64(r, "memberId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload MemberRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		member, err := svc.UpdateMember(r.Context(), id, toMemberInput(payload))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, member)
	}
}

func MemberDelete(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "members service unavailable"))
			return
		}

		id, err := validators.ParseURLParamInt64(r, "memberId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteMember(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "member deleted"})
	}
}

func MemberStats(svc members.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "members service unavailable"))
			return
		}

		stats, err := svc.GetStats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
