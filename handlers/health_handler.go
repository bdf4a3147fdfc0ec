package handlers

import (
	"net/http"

	"vinyasaclub/utils"
)

func Health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
