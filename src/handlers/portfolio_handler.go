package handlers

import (
	"net/http"

	"github.com/username/networth/src/logger"
	"github.com/username/networth/src/services"
	"github.com/username/networth/src/utils"
)

type PortfolioHandler struct {
	summaries services.SummaryService
}

func NewPortfolioHandler(summaries services.SummaryService) *PortfolioHandler {
	return &PortfolioHandler{summaries: summaries}
}

func (h *PortfolioHandler) HandleUpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req updatePortfolioRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		sendError(w, r, err)
		return
	}
	p, err := req.portfolio()
	if err != nil {
		sendError(w, r, err)
		return
	}
	if err := h.summaries.UpdatePortfolio(req.Email, p); err != nil {
		sendError(w, r, err)
		return
	}
	logger.L.Debug("HandleUpdatePortfolio succeeded", "email", req.Email, "netWorth", p.NetWorth().String())
	utils.WriteJSON(w, http.StatusOK, successResponse)
}

// The three summary endpoints answer null while the user has no portfolio.

func (h *PortfolioHandler) HandleGetNetWorth(w http.ResponseWriter, r *http.Request) {
	email, err := emailQuery(r)
	if err != nil {
		sendError(w, r, err)
		return
	}
	worth, err := h.summaries.NetWorth(email)
	if err != nil {
		sendError(w, r, err)
		return
	}
	if worth == nil {
		utils.WriteJSON(w, http.StatusOK, nil)
		return
	}
	utils.WriteJSON(w, http.StatusOK, worth)
}

func (h *PortfolioHandler) HandleGetAssets(w http.ResponseWriter, r *http.Request) {
	email, err := emailQuery(r)
	if err != nil {
		sendError(w, r, err)
		return
	}
	assets, err := h.summaries.Assets(email)
	if err != nil {
		sendError(w, r, err)
		return
	}
	if assets == nil {
		utils.WriteJSON(w, http.StatusOK, nil)
		return
	}
	utils.WriteJSON(w, http.StatusOK, assets)
}

func (h *PortfolioHandler) HandleGetLiabilities(w http.ResponseWriter, r *http.Request) {
	email, err := emailQuery(r)
	if err != nil {
		sendError(w, r, err)
		return
	}
	liabilities, err := h.summaries.Liabilities(email)
	if err != nil {
		sendError(w, r, err)
		return
	}
	if liabilities == nil {
		utils.WriteJSON(w, http.StatusOK, nil)
		return
	}
	utils.WriteJSON(w, http.StatusOK, liabilities)
}
