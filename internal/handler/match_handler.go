package handler

import (
	"errors"
	"net/http"
	"strconv"

	"pongarena/internal/app/match"
	"pongarena/internal/app/user"
	"pongarena/internal/pkg/auth/session"
	"pongarena/internal/pkg/errs"
	"pongarena/internal/pkg/logx"
	"pongarena/internal/pkg/req"
	"pongarena/internal/pkg/resp"
)

type RecordMatchInput struct {
	OpponentID    int64 `json:"opponentId"`
	MyScore       int   `json:"myScore"`
	OpponentScore int   `json:"opponentScore"`
}

// HandleRecordMatch stores a finished game result reported by the caller.
// The winner is derived from the scores; drawn scores are rejected.
func HandleRecordMatch(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := session.FromContext(r)
		if u == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input RecordMatchInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.MyScore == input.OpponentScore {
			resp.RespondError(w, r, errs.NewError(errs.ErrMatchInvalid))
			return
		}

		if _, err := deps.Users.GetByID(r.Context(), input.OpponentID); err != nil {
			if errors.Is(err, user.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound))
				return
			}
			logx.Error(err, "record match: opponent lookup failed", "opponent_id", input.OpponentID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		result := &match.Match{
			PlayerA: u.ID,
			PlayerB: input.OpponentID,
			ScoreA:  input.MyScore,
			ScoreB:  input.OpponentScore,
		}
		if input.MyScore > input.OpponentScore {
			result.WinnerID = u.ID
		} else {
			result.WinnerID = input.OpponentID
		}

		if err := result.Validate(); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrMatchInvalid))
			return
		}

		stored, err := deps.Matches.Create(r.Context(), result)
		if err != nil {
			logx.Error(err, "record match: insert failed", "user_id", u.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"match": stored,
		})
	}
}

// HandleMatchHistory lists recent matches for the caller, or for another user
// when a ?user= query parameter names one.
func HandleMatchHistory(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u := session.FromContext(r)
		if u == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		subjectID := u.ID
		if raw := r.URL.Query().Get("user"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
				return
			}
			subjectID = id
		}

		matches, err := deps.Matches.ListByUser(r.Context(), subjectID)
		if err != nil {
			logx.Error(err, "match history: query failed", "user_id", subjectID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"matches": matches,
		})
	}
}
