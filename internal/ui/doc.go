// Package ui contains the Bubble Tea program that powers the full-screen
// console. The Model type focuses on message orchestration, while
// dedicated helpers own navigation, input capture, rendering, and the
// live progress/monitor views.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update routes each tea.Msg through a typed handler registry so a
//     focused function handles it (key presses, window resizes, action
//     completions, render ticks).
//   - Navigation helpers (navigation.go) manage the stack of menu
//     levels, cursor movement, and the fuzzy filter. Prompt helpers
//     (prompt.go) own all text entry via bubbles/textinput, keeping it
//     isolated from the event loop.
//
// Mode ownership:
//   - ModeMenu renders the current menu level and drives navigation.
//   - ModePrompt and ModeChoice capture one input item and return to
//     the menu once a value is accepted or the prompt is cancelled.
//   - ModeWorking renders the progress tracker while a long action runs
//     in the background; an actionDoneMsg ends it.
//   - ModeMonitor renders the live system/log/task views on a poll
//     tick until dismissed.
package ui
