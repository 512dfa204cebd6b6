// Package navigation implements the page router: exactly one page is
// active at a time and a history stack supports back-navigation.
package navigation

import "sync"

// Page identifies a view of the application.
type Page string

const (
	PageHome             Page = "home"
	PageSearch           Page = "search"
	PageRegisterType     Page = "register-type"
	PagePatientOptions   Page = "patient-options"
	PageHospitalOptions  Page = "hospital-options"
	PagePatientRegister  Page = "patient-register"
	PagePatientLogin     Page = "patient-login"
	PagePatientProfile   Page = "patient-profile"
	PageHospitalRegister Page = "hospital-register"
	PageHospitalLogin    Page = "hospital-login"
	PageHospitalDash     Page = "hospital-dashboard"
	PageHospitalDetails  Page = "hospital-details"
	PageBookingForm      Page = "booking-form"
	PagePayment          Page = "payment"
	PageSuccess          Page = "success"
)

var pages = map[Page]bool{
	PageHome: true, PageSearch: true, PageRegisterType: true,
	PagePatientOptions: true, PageHospitalOptions: true,
	PagePatientRegister: true, PagePatientLogin: true, PagePatientProfile: true,
	PageHospitalRegister: true, PageHospitalLogin: true, PageHospitalDash: true,
	PageHospitalDetails: true, PageBookingForm: true,
	PagePayment: true, PageSuccess: true,
}

// Valid reports whether p names a known page.
func Valid(p Page) bool {
	return pages[p]
}

// Navigator is the page history stack. The stack is never empty; the
// floor entry is always the home page. Like the session, it is shared
// across overlapping requests, so stack access is serialized. Hooks run
// outside the lock so they may use the navigator.
type Navigator struct {
	mu    sync.Mutex
	stack []Page
	hooks map[Page]func()
}

func New() *Navigator {
	return &Navigator{
		stack: []Page{PageHome},
		hooks: make(map[Page]func()),
	}
}

// OnEnter registers a side effect that runs every time page becomes
// active (the profile page reloads the profile this way).
func (n *Navigator) OnEnter(page Page, fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.hooks[page] = fn
}

// Current returns the active page.
func (n *Navigator) Current() Page {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack[len(n.stack)-1]
}

// Depth returns the history depth.
func (n *Navigator) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.stack)
}

// NavigateTo activates page, pushing it onto the history only when it
// differs from the current top.
func (n *Navigator) NavigateTo(page Page) {
	n.mu.Lock()
	if n.stack[len(n.stack)-1] != page {
		n.stack = append(n.stack, page)
	}
	n.mu.Unlock()
	n.enter(page)
}

// Back discards the current page and activates the one beneath it. At the
// bottom of the stack it stays on home.
func (n *Navigator) Back() Page {
	n.mu.Lock()
	if len(n.stack) > 1 {
		n.stack = n.stack[:len(n.stack)-1]
	}
	current := n.stack[len(n.stack)-1]
	n.mu.Unlock()
	n.enter(current)
	return current
}

// Reset returns the history to its initial single-entry home state.
func (n *Navigator) Reset() {
	n.mu.Lock()
	n.stack = []Page{PageHome}
	n.mu.Unlock()
	n.enter(PageHome)
}

func (n *Navigator) enter(page Page) {
	n.mu.Lock()
	hook := n.hooks[page]
	n.mu.Unlock()
	if hook != nil {
		hook()
	}
}
