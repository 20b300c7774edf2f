package handler

import "net/http"

// ListTrash handles GET /trips/{tripId}/trash.
func (s *Server) ListTrash(w http.ResponseWriter, r *http.Request) {
	var tripID string
	if !bindPath(w, r, "tripId", &tripID) {
		return
	}
	items, err := s.boards.Trash(r.Context(), tripID)
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, TrashList{Data: items})
}

// RestoreFromTrash handles POST /trips/{tripId}/trash/{trashId}/restore.
// Activities return to the selected day when one is set, else to their
// original day. An item with nowhere to go stays in the trash.
func (s *Server) RestoreFromTrash(w http.ResponseWriter, r *http.Request) {
	var tripID, trashID string
	if !bindPath(w, r, "tripId", &tripID) || !bindPath(w, r, "trashId", &trashID) {
		return
	}
	view, err := s.boards.RestoreFromTrash(r.Context(), tripID, trashID)
	s.boardResult(w, r, http.StatusOK, view, err)
}

// EmptyTrash handles DELETE /trips/{tripId}/trash.
func (s *Server) EmptyTrash(w http.ResponseWriter, r *http.Request) {
	var tripID string
	if !bindPath(w, r, "tripId", &tripID) {
		return
	}
	n, err := s.boards.EmptyTrash(r.Context(), tripID)
	if err != nil {
		s.serviceError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, EmptyTrashResponse{Removed: n})
}
