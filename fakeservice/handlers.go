package fakeservice

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// flexID accepts an identifier sent either as a JSON number or as a numeric string.
type flexID int64

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*f = flexID(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n)
	return nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createAccountRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    int64  `json:"phone"`
	Password string `json:"password"`
}

type createLogHeadRequest struct {
	Subject      string    `json:"subject"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	WriterIDList []flexID  `json:"writer_id_list"`
	OwnerID      flexID    `json:"owner_id"`
}

type createLogContentRequest struct {
	LogHeadID flexID    `json:"log_head_id"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
}

func (s *Service) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !readJSON(w, r, &req) {
		return
	}
	acc, ok := s.store.accountByUsername(req.Username)
	if !ok || acc.Password != req.Password {
		writeError(w, http.StatusUnauthorized, "wrong username or password")
		return
	}
	token, err := s.tokens.issue(acc.ID, acc.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	role := acc.Role
	if override, ok := s.faults.RoleOverride[acc.Username]; ok {
		role = override
	}
	resp := map[string]interface{}{"role": role}
	if !s.faults.OmitLoginToken {
		resp["token"] = token
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts := s.store.listAccounts()
	ret := make([]map[string]interface{}, 0, len(accounts))
	for _, a := range accounts {
		ret = append(ret, s.renderAccount(a))
	}
	writeJSON(w, http.StatusOK, ret)
}

func (s *Service) createAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	acc, ok := s.store.addAccount(Account{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     roleMember,
	})
	if !ok {
		writeError(w, http.StatusConflict, "username already exists")
		return
	}
	resp := s.renderAccount(acc)
	if s.faults.OmitAccountID {
		delete(resp, "ID")
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Service) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !s.store.deleteAccount(id) {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) listLogHeads(w http.ResponseWriter, r *http.Request) {
	s.writeHeads(w, s.store.listHeads(nil))
}

func (s *Service) listWritableLogHeads(w http.ResponseWriter, r *http.Request) {
	c := claimsFrom(r)
	if c.Role == roleAdmin {
		s.writeHeads(w, s.store.listHeads(nil))
		return
	}
	if s.faults.HideWritableFromMembers {
		s.writeHeads(w, nil)
		return
	}
	s.writeHeads(w, s.store.listHeads(func(h LogHead) bool { return h.canWrite(c.AccountID) }))
}

func (s *Service) createLogHead(w http.ResponseWriter, r *http.Request) {
	var req createLogHeadRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Subject == "" || req.EndDate.Before(req.StartDate) {
		writeError(w, http.StatusBadRequest, "invalid log head")
		return
	}
	writers := make([]int64, 0, len(req.WriterIDList))
	for _, id := range req.WriterIDList {
		writers = append(writers, int64(id))
	}
	h := s.store.addHead(LogHead{
		Subject:      req.Subject,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		WriterIDList: writers,
		OwnerID:      int64(req.OwnerID),
	})
	writeJSON(w, http.StatusCreated, s.renderHead(h))
}

func (s *Service) deleteLogHead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !s.store.deleteHead(id) {
		writeError(w, http.StatusNotFound, "log head not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) createLogContent(w http.ResponseWriter, r *http.Request) {
	var req createLogContentRequest
	if !readJSON(w, r, &req) {
		return
	}
	c := claimsFrom(r)
	h, ok := s.store.head(int64(req.LogHeadID))
	if !ok {
		writeError(w, http.StatusNotFound, "log head not found")
		return
	}
	if c.Role != roleAdmin && !h.canWrite(c.AccountID) {
		writeError(w, http.StatusForbidden, "no write permission for this log")
		return
	}
	lc := s.store.addContent(LogContent{
		LogHeadID: h.ID,
		WriterID:  c.AccountID,
		Content:   req.Content,
		Date:      req.Date,
	})
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":          s.renderID(lc.ID),
		"log_head_id": s.renderID(lc.LogHeadID),
		"writer_id":   s.renderID(lc.WriterID),
		"content":     lc.Content,
		"date":        lc.Date,
	})
}

func (s *Service) writeHeads(w http.ResponseWriter, heads []LogHead) {
	ret := make([]map[string]interface{}, 0, len(heads))
	for _, h := range heads {
		ret = append(ret, s.renderHead(h))
	}
	writeJSON(w, http.StatusOK, ret)
}

func (s *Service) renderAccount(a Account) map[string]interface{} {
	return map[string]interface{}{
		"ID":       s.renderID(a.ID),
		"Username": a.Username,
		"Email":    a.Email,
		"Phone":    a.Phone,
		"Role":     a.Role,
	}
}

func (s *Service) renderHead(h LogHead) map[string]interface{} {
	writers := make([]interface{}, 0, len(h.WriterIDList))
	for _, id := range h.WriterIDList {
		writers = append(writers, s.renderID(id))
	}
	return map[string]interface{}{
		"id":             s.renderID(h.ID),
		"subject":        h.Subject,
		"start_date":     h.StartDate,
		"end_date":       h.EndDate,
		"writer_id_list": writers,
		"owner_id":       s.renderID(h.OwnerID),
	}
}

func (s *Service) renderID(id int64) interface{} {
	if s.faults.StringIDs {
		return strconv.FormatInt(id, 10)
	}
	return id
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func readJSON(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
