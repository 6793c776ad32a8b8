package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"museum-booking-cli/calendar"
	"museum-booking-cli/model"
	"museum-booking-cli/service"
	"museum-booking-cli/store"
)

type appState int

const (
	stateMenu appState = iota
	stateSelectDate
	stateSelectNationality
	stateSelectTicketType
	stateSelectTimeSlot
	stateEnterVisitors
	stateEnterEmail
	stateReviewSummary
	stateSubmitting
	stateConfirmed
	stateEnterBookingRef
	stateLoadingStatus
	stateShowStatus
	stateError
)

type chatLine struct {
	fromUser bool
	text     string
}

// pricingParams is the parameter tuple a pricing fetch was issued for.
// Responses whose tuple no longer matches the draft are stale and dropped.
type pricingParams struct {
	nationality model.Nationality
	ticketType  model.TicketType
	date        string
}

type appModel struct {
	client *service.Client
	events <-chan model.ChatEvent
	log    zerolog.Logger
	now    func() time.Time

	sessionID string
	state     appState
	lastState appState
	err       error

	width  int
	height int

	transcript []chatLine

	// draft is the single in-progress booking, reset on every new attempt.
	draft model.BookingDraft

	grid      calendar.Grid
	calYear   int
	calMonth  time.Month
	calCursor int

	menuList        list.Model
	nationalityList list.Model
	ticketList      list.Model
	slotList        list.Model

	adultsInput   textinput.Model
	childrenInput textinput.Model
	emailInput    textinput.Model
	refInput      textinput.Model
	visitorFocus  int

	pricingSeq     int
	pricingPending bool
	pricingErr     error

	confirmed            model.ConfirmedBooking
	confirmationEmailOK  bool
	confirmationEmailErr bool
	emailPending         bool

	lookupRef      string
	statusView     model.BookingStatusView
	statusNotFound bool
	recentBookings []store.RecentBooking

	spinner spinner.Model
}

type chatEventMsg struct {
	event model.ChatEvent
}

type feedClosedMsg struct{}

type chatReplyMsg struct {
	reply model.ChatReply
	err   error
}

type availabilityMsg struct {
	year  int
	month time.Month
	data  model.MonthAvailability
	err   error
}

type pricingMsg struct {
	seq     int
	params  pricingParams
	pricing model.Pricing
	err     error
}

type bookingResultMsg struct {
	result model.BookingResult
	err    error
}

type emailResultMsg struct {
	bookingID string
	err       error
}

type statusResultMsg struct {
	ref  string
	view model.BookingStatusView
	err  error
}

// New builds the flow controller. events is the inbound message channel;
// pass nil to run without server push.
func New(client *service.Client, events <-chan model.ChatEvent, log zerolog.Logger) tea.Model {
	m := appModel{
		client:    client,
		events:    events,
		log:       log.With().Str("component", "booking-flow").Logger(),
		now:       time.Now,
		sessionID: uuid.NewString(),
		state:     stateMenu,
	}

	m.menuList = newList("Museum Ticket Booking")
	m.menuList.SetItems(menuItems())
	m.nationalityList = newList("Are you a local or foreign visitor?")
	m.nationalityList.SetItems(nationalityItems())
	m.ticketList = newList("Select Ticket Type")
	m.ticketList.SetItems(ticketItems())
	m.slotList = newList("Select Time Slot")

	m.adultsInput = newCountInput("adults")
	m.childrenInput = newCountInput("children")
	m.emailInput = textinput.New()
	m.emailInput.Placeholder = "you@example.com"
	m.emailInput.CharLimit = 120
	m.refInput = textinput.New()
	m.refInput.Placeholder = "booking reference"
	m.refInput.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	m.spinner = sp

	return m
}

func newList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

func newCountInput(placeholder string) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 3
	input.Validate = func(s string) error {
		for _, r := range s {
			if r < '0' || r > '9' {
				return errors.New("digits only")
			}
		}
		return nil
	}
	return input
}

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.events != nil {
		cmds = append(cmds, waitForEvent(m.events))
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		next, cmd, handled := m.handleKey(msg)
		if handled {
			return next, cmd
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.state == stateSubmitting || m.state == stateLoadingStatus {
			return m, cmd
		}
		return m, nil

	case chatEventMsg:
		return m.handleChatEvent(msg.event)

	case feedClosedMsg:
		m.events = nil
		return m, nil

	case chatReplyMsg:
		if msg.err != nil {
			// Chat flavor only; the flow already advanced.
			m.log.Warn().Err(msg.err).Msg("chat reply failed")
			return m, nil
		}
		next := m.botSay(msg.reply.Message)
		if msg.reply.NextAction != "" {
			return next.applyAction(msg.reply.NextAction)
		}
		return next, nil

	case availabilityMsg:
		return m.handleAvailability(msg)

	case pricingMsg:
		return m.handlePricing(msg)

	case bookingResultMsg:
		return m.handleBookingResult(msg)

	case emailResultMsg:
		if msg.bookingID != m.confirmed.ID {
			return m, nil
		}
		m.emailPending = false
		if msg.err != nil {
			// Advisory only; the booking stands.
			m.confirmationEmailErr = true
			m.log.Warn().Err(msg.err).Str("booking_id", msg.bookingID).Msg("confirmation email failed")
		} else {
			m.confirmationEmailOK = true
		}
		return m, nil

	case statusResultMsg:
		return m.handleStatusResult(msg)
	}

	return m.updateActiveComponent(msg)
}

func (m appModel) updateActiveComponent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case stateMenu:
		m.menuList, cmd = m.menuList.Update(msg)
	case stateSelectNationality:
		m.nationalityList, cmd = m.nationalityList.Update(msg)
	case stateSelectTicketType:
		m.ticketList, cmd = m.ticketList.Update(msg)
	case stateSelectTimeSlot:
		m.slotList, cmd = m.slotList.Update(msg)
	case stateEnterVisitors:
		if m.visitorFocus == 0 {
			m.adultsInput, cmd = m.adultsInput.Update(msg)
		} else {
			m.childrenInput, cmd = m.childrenInput.Update(msg)
		}
	case stateEnterEmail:
		m.emailInput, cmd = m.emailInput.Update(msg)
	case stateEnterBookingRef:
		m.refInput, cmd = m.refInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit, true
	}
	if key == "q" && !m.isTypingState() {
		return m, tea.Quit, true
	}
	if key == "esc" {
		next, cmd := m.goBack()
		return next, cmd, true
	}

	switch m.state {
	case stateSelectDate:
		return m.handleCalendarKey(msg)

	case stateEnterVisitors:
		if key == "tab" || key == "shift+tab" || key == "up" || key == "down" {
			m.toggleVisitorFocus()
			return m, nil, true
		}

	case stateConfirmed, stateShowStatus:
		if msg.Type == tea.KeyEnter {
			next := m.returnToMenu()
			return next, nil, true
		}
		return m, nil, true
	}

	if msg.Type == tea.KeyEnter {
		return m.handleEnter()
	}
	return m, nil, false
}

func (m appModel) handleEnter() (tea.Model, tea.Cmd, bool) {
	switch m.state {
	case stateMenu:
		item, ok := m.menuList.SelectedItem().(menuItem)
		if !ok {
			return m, nil, true
		}
		switch item.action {
		case menuBook:
			next, cmd := m.beginBooking()
			return next, cmd, true
		case menuStatus:
			next, cmd := m.enterBookingRefStep()
			return next, cmd, true
		case menuQuit:
			return m, tea.Quit, true
		}
		return m, nil, true

	case stateSelectNationality:
		item, ok := m.nationalityList.SelectedItem().(choiceItem)
		if !ok {
			return m, nil, true
		}
		m.draft.Nationality = model.Nationality(item.value)
		next := m.userSay(item.value)
		next2, cmd := next.enterTicketTypeStep()
		return next2, cmd, true

	case stateSelectTicketType:
		item, ok := m.ticketList.SelectedItem().(choiceItem)
		if !ok {
			return m, nil, true
		}
		m.draft.TicketType = model.TicketType(item.value)
		next := m.userSay(item.value)
		next2, cmd := next.enterTimeSlotStep()
		return next2, cmd, true

	case stateSelectTimeSlot:
		item, ok := m.slotList.SelectedItem().(slotItem)
		if !ok {
			return m, nil, true
		}
		if item.past {
			next := m.botSay("That time slot has already passed today. Please pick another one.")
			return next, nil, true
		}
		m.draft.TimeSlot = item.time
		next := m.userSay(item.time)
		next2, cmd := next.enterVisitorsStep()
		return next2, cmd, true

	case stateEnterVisitors:
		next, cmd := m.submitVisitors()
		return next, cmd, true

	case stateEnterEmail:
		next, cmd := m.submitEmail()
		return next, cmd, true

	case stateReviewSummary:
		next, cmd := m.confirmPayment()
		return next, cmd, true

	case stateEnterBookingRef:
		next, cmd := m.submitBookingRef()
		return next, cmd, true

	case stateError:
		m.state = m.lastState
		m.err = nil
		return m, nil, true
	}
	return m, nil, false
}

func (m appModel) isTypingState() bool {
	switch m.state {
	case stateEnterVisitors, stateEnterEmail, stateEnterBookingRef:
		return true
	default:
		return false
	}
}

// goBack walks one step backwards; from the menu it abandons the session.
func (m appModel) goBack() (tea.Model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m, tea.Quit
	case stateSelectDate:
		m.state = stateMenu
	case stateSelectNationality:
		return m.enterDateStep()
	case stateSelectTicketType:
		m.state = stateSelectNationality
	case stateSelectTimeSlot:
		m.state = stateSelectTicketType
	case stateEnterVisitors:
		return m.enterTimeSlotStep()
	case stateEnterEmail:
		return m.enterVisitorsStep()
	case stateReviewSummary:
		return m.enterEmailStep()
	case stateSubmitting:
		// A submit in flight cannot be unwound from the client side.
		return m, nil
	case stateConfirmed, stateShowStatus:
		return m.returnToMenu(), nil
	case stateEnterBookingRef, stateLoadingStatus:
		m.state = stateMenu
	case stateError:
		m.state = m.lastState
		m.err = nil
	}
	return m, nil
}

func (m appModel) returnToMenu() appModel {
	m.state = stateMenu
	return m
}

// --- step entry actions -----------------------------------------------------

// beginBooking resets the draft and opens the calendar. The chat request is
// conversational flavor; the flow does not depend on its success.
func (m appModel) beginBooking() (appModel, tea.Cmd) {
	m.draft = model.BookingDraft{}
	m.confirmed = model.ConfirmedBooking{}
	m.confirmationEmailOK = false
	m.confirmationEmailErr = false
	next := m.userSay("I want to book tickets")
	next2, cmd := next.enterDateStep()
	return next2, tea.Batch(cmd, next2.sendChatCmd("I want to book tickets"))
}

func (m appModel) enterDateStep() (appModel, tea.Cmd) {
	today := m.now()
	if m.calYear == 0 {
		m.calYear, m.calMonth = today.Year(), today.Month()
	}
	m.state = stateSelectDate
	m.grid = calendar.BuildMonthGrid(m.calYear, m.calMonth, today)
	m.calCursor = m.defaultCursor()
	m = m.botSay("Please pick a date for your visit.")
	return m, m.fetchAvailabilityCmd(m.calYear, m.calMonth)
}

func (m appModel) enterNationalityStep() (appModel, tea.Cmd) {
	m.state = stateSelectNationality
	m = m.botSay("Are you a local or a foreign visitor?")
	return m, nil
}

func (m appModel) enterTicketTypeStep() (appModel, tea.Cmd) {
	m.state = stateSelectTicketType
	m = m.botSay("Which ticket type would you like?")
	return m, nil
}

func (m appModel) enterTimeSlotStep() (appModel, tea.Cmd) {
	m.state = stateSelectTimeSlot
	m.slotList.SetItems(m.buildSlotItems())
	m.slotList.Select(0)
	m = m.botSay("Please choose a time slot.")
	return m, nil
}

// enterVisitorsStep fetches unit prices for the draft's current tuple so
// they can be shown alongside the count inputs.
func (m appModel) enterVisitorsStep() (appModel, tea.Cmd) {
	m.state = stateEnterVisitors
	m.visitorFocus = 0
	m.adultsInput.Focus()
	m.childrenInput.Blur()
	m = m.botSay("How many visitors? Enter adults and children.")
	cmd := m.fetchPricingCmd()
	return m, cmd
}

func (m appModel) enterEmailStep() (appModel, tea.Cmd) {
	m.state = stateEnterEmail
	m.emailInput.Focus()
	m = m.botSay("Where should we send your booking confirmation?")
	return m, nil
}

// enterSummaryStep re-fetches prices: the earlier fetch may be stale by now
// and prices are date-dependent.
func (m appModel) enterSummaryStep() (appModel, tea.Cmd) {
	m.state = stateReviewSummary
	m = m.botSay("Here is your booking summary. Press enter to confirm and pay.")
	cmd := m.fetchPricingCmd()
	return m, cmd
}

func (m appModel) enterBookingRefStep() (appModel, tea.Cmd) {
	m.state = stateEnterBookingRef
	m.refInput.SetValue("")
	m.refInput.Focus()
	m.recentBookings, _ = store.LoadRecentBookings()
	m = m.botSay("Enter your booking reference to check its status.")
	return m, nil
}

// --- submissions ------------------------------------------------------------

func (m appModel) submitVisitors() (appModel, tea.Cmd) {
	adultsRaw := strings.TrimSpace(m.adultsInput.Value())
	childrenRaw := strings.TrimSpace(m.childrenInput.Value())

	if adultsRaw == "" {
		return m.botSay("Please enter the number of adults."), nil
	}
	adults, err := strconv.Atoi(adultsRaw)
	if err != nil {
		return m.botSay("The number of adults must be a whole number."), nil
	}
	children := 0
	if childrenRaw != "" {
		children, err = strconv.Atoi(childrenRaw)
		if err != nil {
			return m.botSay("The number of children must be a whole number."), nil
		}
	}

	if m.pricingErr != nil {
		next, cmd := m.retryPricing()
		return next, cmd
	}
	if m.pricingPending {
		return m.botSay("Still fetching ticket prices, one moment..."), nil
	}

	if err := m.draft.SetVisitors(adults, children); err != nil {
		return m.botSay(visitorErrorMessage(err)), nil
	}
	m = m.userSay(visitorSummary(adults, children))
	return m.enterEmailStep()
}

func (m appModel) submitEmail() (appModel, tea.Cmd) {
	email := strings.TrimSpace(m.emailInput.Value())
	if err := m.draft.SetEmail(email); err != nil {
		return m.botSay("That email address doesn't look right. Please try again."), nil
	}
	m = m.userSay(email)
	return m.enterSummaryStep()
}

func (m appModel) confirmPayment() (appModel, tea.Cmd) {
	if m.pricingPending {
		return m.botSay("Confirming the latest prices, one moment..."), nil
	}
	if m.pricingErr != nil {
		next, cmd := m.retryPricing()
		return next, cmd
	}
	if err := m.draft.ReadyToSubmit(); err != nil {
		return m.botSay("Your booking is incomplete: " + err.Error()), nil
	}
	m.state = stateSubmitting
	m = m.userSay("Confirm and pay")
	return m, tea.Batch(m.createBookingCmd(m.draft.Request()), m.spinner.Tick)
}

func (m appModel) submitBookingRef() (appModel, tea.Cmd) {
	ref := strings.TrimSpace(m.refInput.Value())
	if ref == "" {
		return m.botSay("Please enter a booking reference."), nil
	}
	m.lookupRef = ref
	m.statusNotFound = false
	m.state = stateLoadingStatus
	return m, tea.Batch(m.fetchStatusCmd(ref), m.spinner.Tick)
}

func (m appModel) retryPricing() (appModel, tea.Cmd) {
	m = m.botSay("Could not fetch ticket prices. Retrying...")
	cmd := m.fetchPricingCmd()
	return m, cmd
}

// --- message handlers -------------------------------------------------------

func (m appModel) handleChatEvent(event model.ChatEvent) (tea.Model, tea.Cmd) {
	next := m
	if event.Message != "" {
		next = next.botSay(event.Message)
	}
	rearm := waitForEvent(next.events)
	if event.Action == "" {
		return next, rearm
	}
	result, cmd := next.applyAction(event.Action)
	return result, tea.Batch(cmd, rearm)
}

// applyAction re-triggers the entry action of the step an inbound event names.
// Actions that would skip ahead of the data the draft actually holds are
// ignored.
func (m appModel) applyAction(action string) (appModel, tea.Cmd) {
	switch action {
	case model.ActionShowCalendar:
		return m.enterDateStep()
	case model.ActionSelectNationality:
		if m.draft.Date == "" {
			break
		}
		return m.enterNationalityStep()
	case model.ActionSelectTime:
		if m.draft.TicketType == "" {
			break
		}
		return m.enterTimeSlotStep()
	case model.ActionSelectVisitors:
		if m.draft.TimeSlot == "" {
			break
		}
		return m.enterVisitorsStep()
	case model.ActionShowSummary:
		if m.draft.Email == "" {
			break
		}
		return m.enterSummaryStep()
	}
	m.log.Debug().Str("action", action).Msg("ignoring out-of-sequence action")
	return m, nil
}

func (m appModel) handleAvailability(msg availabilityMsg) (tea.Model, tea.Cmd) {
	if msg.year != m.calYear || msg.month != m.calMonth {
		// The user already navigated to a different month.
		return m, nil
	}
	if msg.err != nil {
		calendar.MarkError(&m.grid)
		m.log.Warn().Err(msg.err).Int("year", msg.year).Int("month", int(msg.month)).Msg("availability fetch failed")
		return m.botSay("Could not load availability for this month. You can still navigate the calendar."), nil
	}
	calendar.ApplyAvailability(&m.grid, msg.data, m.now())
	if !m.cursorSelectable() {
		m.calCursor = m.defaultCursor()
	}
	return m, nil
}

func (m appModel) handlePricing(msg pricingMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.pricingSeq {
		// Superseded by a newer fetch.
		return m, nil
	}
	current := pricingParams{
		nationality: m.draft.Nationality,
		ticketType:  m.draft.TicketType,
		date:        m.draft.Date,
	}
	if msg.params != current {
		// The draft moved on while this response was in flight.
		m.log.Debug().Msg("discarding stale pricing response")
		return m, nil
	}
	if m.state != stateEnterVisitors && m.state != stateReviewSummary {
		return m, nil
	}

	m.pricingPending = false
	if msg.err != nil {
		m.pricingErr = msg.err
		return m.botSay(service.UserMessage(msg.err, "Could not fetch ticket prices. Press enter to retry.")), nil
	}
	m.pricingErr = nil
	m.draft.ApplyPricing(msg.pricing)
	if m.state == stateEnterVisitors {
		return m.botSay(pricingSummary(msg.pricing)), nil
	}
	return m, nil
}

func (m appModel) handleBookingResult(msg bookingResultMsg) (tea.Model, tea.Cmd) {
	if m.state != stateSubmitting {
		return m, nil
	}
	if msg.err != nil {
		var apiErr *service.APIError
		if errors.As(msg.err, &apiErr) {
			// The gateway rejected the booking; its message belongs in chat.
			m.state = stateReviewSummary
			return m.botSay(service.UserMessage(msg.err, "Booking failed. Please try again.")), nil
		}
		// Transport failure: the submit may or may not have landed. Park on
		// the error screen instead of silently re-offering the summary.
		m.lastState = stateReviewSummary
		m.state = stateError
		m.err = msg.err
		m.log.Error().Err(msg.err).Msg("booking submit failed in transit")
		return m, nil
	}
	if !msg.result.Success {
		m.state = stateReviewSummary
		reason := msg.result.Message
		if reason == "" {
			reason = msg.result.Error
		}
		if reason == "" {
			reason = "Booking failed. Please try again."
		}
		return m.botSay(reason), nil
	}

	amount := msg.result.Amount
	if amount == 0 {
		amount = m.draft.Amount
	}
	m.confirmed = model.ConfirmedBooking{
		ID:       msg.result.BookingID,
		Date:     m.draft.Date,
		TimeSlot: m.draft.TimeSlot,
		Adults:   m.draft.Adults,
		Children: m.draft.Children,
		Amount:   amount,
		Email:    m.draft.Email,
	}
	m.state = stateConfirmed
	m.emailPending = true
	if err := store.RememberBooking(store.RecentBooking{ID: m.confirmed.ID, Date: m.confirmed.Date}); err != nil {
		m.log.Warn().Err(err).Msg("could not remember booking")
	}
	m.log.Info().Str("booking_id", m.confirmed.ID).Float64("amount", amount).Msg("booking confirmed")
	return m, m.sendEmailCmd(m.confirmed)
}

func (m appModel) handleStatusResult(msg statusResultMsg) (tea.Model, tea.Cmd) {
	if m.state != stateLoadingStatus || msg.ref != m.lookupRef {
		return m, nil
	}
	m.state = stateShowStatus
	if msg.err != nil {
		// Unknown reference and transport failure render the same way.
		m.statusNotFound = true
		if !errors.Is(msg.err, service.ErrBookingNotFound) {
			m.log.Warn().Err(msg.err).Str("ref", msg.ref).Msg("status lookup failed")
		}
		return m, nil
	}
	m.statusNotFound = false
	m.statusView = msg.view
	if err := store.RememberBooking(store.RecentBooking{ID: msg.view.ID, Date: msg.view.Date}); err != nil {
		m.log.Warn().Err(err).Msg("could not remember booking")
	}
	return m, nil
}

// --- commands ---------------------------------------------------------------

func waitForEvent(events <-chan model.ChatEvent) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return feedClosedMsg{}
		}
		return chatEventMsg{event: event}
	}
}

func (m appModel) sendChatCmd(text string) tea.Cmd {
	client := m.client
	sessionID := m.sessionID
	return func() tea.Msg {
		reply, err := client.SendChatMessage(context.Background(), sessionID, text)
		return chatReplyMsg{reply: reply, err: err}
	}
}

func (m appModel) fetchAvailabilityCmd(year int, month time.Month) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if cached, fresh, err := store.LoadAvailabilityCache(year, int(month)); err == nil && fresh && len(cached) > 0 {
			return availabilityMsg{year: year, month: month, data: cached}
		}
		data, err := client.GetMonthlyAvailability(context.Background(), year, int(month))
		if err == nil && len(data) > 0 {
			_ = store.SaveAvailabilityCache(year, int(month), data)
		}
		return availabilityMsg{year: year, month: month, data: data, err: err}
	}
}

// fetchPricingCmd issues a fresh pricing fetch tagged with the draft's
// current tuple and a new sequence number.
func (m *appModel) fetchPricingCmd() tea.Cmd {
	m.pricingSeq++
	m.pricingPending = true
	m.pricingErr = nil
	seq := m.pricingSeq
	params := pricingParams{
		nationality: m.draft.Nationality,
		ticketType:  m.draft.TicketType,
		date:        m.draft.Date,
	}
	client := m.client
	return func() tea.Msg {
		pricing, err := client.GetPricing(context.Background(), params.nationality, params.ticketType, params.date)
		return pricingMsg{seq: seq, params: params, pricing: pricing, err: err}
	}
}

func (m appModel) createBookingCmd(req model.BookingRequest) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result, err := client.CreateBooking(context.Background(), req)
		return bookingResultMsg{result: result, err: err}
	}
}

func (m appModel) sendEmailCmd(booking model.ConfirmedBooking) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.SendConfirmationEmail(context.Background(), model.EmailRequest{
			ToEmail:   booking.Email,
			BookingID: booking.ID,
			BookingDetails: model.EmailDetails{
				Date:     booking.Date,
				TimeSlot: booking.TimeSlot,
				Adults:   booking.Adults,
				Children: booking.Children,
				Amount:   booking.Amount,
				Email:    booking.Email,
			},
		})
		return emailResultMsg{bookingID: booking.ID, err: err}
	}
}

func (m appModel) fetchStatusCmd(ref string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		view, err := client.GetBookingStatus(context.Background(), ref)
		return statusResultMsg{ref: ref, view: view, err: err}
	}
}

// --- transcript -------------------------------------------------------------

func (m appModel) botSay(text string) appModel {
	if text == "" {
		return m
	}
	m.transcript = append(m.transcript, chatLine{text: text})
	return m
}

func (m appModel) userSay(text string) appModel {
	m.transcript = append(m.transcript, chatLine{fromUser: true, text: text})
	return m
}

func (m *appModel) toggleVisitorFocus() {
	if m.visitorFocus == 0 {
		m.visitorFocus = 1
		m.adultsInput.Blur()
		m.childrenInput.Focus()
	} else {
		m.visitorFocus = 0
		m.childrenInput.Blur()
		m.adultsInput.Focus()
	}
}

func (m *appModel) resizeLists() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 10
	if h < 6 {
		h = 6
	}
	m.menuList.SetSize(m.width, h)
	m.nationalityList.SetSize(m.width, h)
	m.ticketList.SetSize(m.width, h)
	m.slotList.SetSize(m.width, h)
}

func visitorErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrNegativeCount):
		return "Visitor counts cannot be negative."
	case errors.Is(err, model.ErrNoVisitors):
		return "At least one visitor is required."
	default:
		return "Invalid visitor counts. Please try again."
	}
}
