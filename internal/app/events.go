package app

import (
	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/logger"
)

// subscribeEvents keeps the screen in sync with the document.
func (a *App) subscribeEvents() {
	a.eventManager.SubscribeDocumentChanges(a.handleDocumentChanged)
	a.eventManager.Subscribe(event.TypeHistoryChanged, a.handleHistoryChanged)
}

// handleDocumentChanged redraws after any structural or pixel change.
func (a *App) handleDocumentChanged(e event.Event) bool {
	a.requestRedraw()
	return false
}

// handleHistoryChanged refreshes the undo/redo labels.
func (a *App) handleHistoryChanged(e event.Event) bool {
	if data, ok := e.Data.(event.HistoryData); ok {
		logger.DebugTagf("app", "History changed: undo=%q redo=%q", data.UndoLabel, data.RedoLabel)
	}
	a.updateStatusBarContent()
	a.requestRedraw()
	return false
}
