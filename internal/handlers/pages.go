package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"
	"github.com/wellywell/orderboard/internal/animation"
	"github.com/wellywell/orderboard/internal/auth"
	"github.com/wellywell/orderboard/internal/board"
	"github.com/wellywell/orderboard/internal/classify"
	"github.com/wellywell/orderboard/internal/metrics"
	"github.com/wellywell/orderboard/internal/types"
	"github.com/wellywell/orderboard/internal/validate"
)

const timeLayout = "03:04 PM"

var formMessages = map[error]string{
	validate.ErrRegistrationIncomplete: "دخل بياناتك كاملة يا هندسة!",
	validate.ErrUnknownGender:          "اختار النوع / الفئة من القائمة",
	validate.ErrOrderEmpty:             "اكتب طلبك الأول",
	validate.ErrRoomEmpty:              "اختار المكان",
	validate.ErrTooLong:                "النص طويل جداً",
}

type cardView struct {
	board.Card
	Time     string
	Glyph    string
	Animated bool
}

type historyView struct {
	types.Order
	Time string
}

type boardPage struct {
	User           auth.User
	Cards          []cardView
	History        []historyView
	Rooms          []string
	RefreshSeconds int
	Warning        bool
	Error          string
	Room           string
	OrderText      string
}

type loginPage struct {
	Genders  []string
	Animated bool
	Error    string
	Name     string
	Job      string
	Gender   string
}

func formMessage(err error) string {
	for target, msg := range formMessages {
		if errors.Is(err, target) {
			return msg
		}
	}
	return err.Error()
}

func (h *HandlerSet) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.pages.ExecuteTemplate(w, name, data); err != nil {
		logger.Errorf("Could not render %s: %s", name, err)
	}
}

func (h *HandlerSet) HandleLoginPage(w http.ResponseWriter, req *http.Request) {
	if _, err := auth.VerifyUser(req, h.secret); err == nil {
		http.Redirect(w, req, "/", http.StatusSeeOther)
		return
	}
	h.renderLogin(w, req, http.StatusOK, loginPage{})
}

func (h *HandlerSet) renderLogin(w http.ResponseWriter, req *http.Request, status int, page loginPage) {
	page.Genders = validate.Genders
	_, page.Animated = h.animations.Lookup(req.Context(), animation.Login)
	h.render(w, status, "login.html", page)
}

func (h *HandlerSet) HandleLogin(w http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(w, req.Body, maxBodyBytes)
	if err := req.ParseForm(); err != nil {
		http.Error(w, "Could not parse body", http.StatusBadRequest)
		return
	}

	name, job, gender, err := validate.Registration(req.PostForm.Get("name"), req.PostForm.Get("job"), req.PostForm.Get("gender"))
	if err != nil {
		h.renderLogin(w, req, http.StatusUnprocessableEntity, loginPage{
			Error:  formMessage(err),
			Name:   req.PostForm.Get("name"),
			Job:    req.PostForm.Get("job"),
			Gender: req.PostForm.Get("gender"),
		})
		return
	}

	if err := h.login(w, req, name, job, gender); err != nil {
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, req, "/", http.StatusSeeOther)
}

func (h *HandlerSet) login(w http.ResponseWriter, req *http.Request, name, job, gender string) error {
	user, err := h.storage.UpsertUser(req.Context(), types.User{Name: name, Job: job, Gender: gender})
	if err != nil {
		metrics.StorageErrorsTotal.WithLabelValues("upsert_user").Inc()
		logger.Errorf("Could not save user %s: %s", name, err)
		return err
	}

	err = auth.SetAuthCookie(auth.User{Name: user.Name, Job: user.Job, Gender: user.Gender}, w, h.secret, h.cookieExpiresSeconds)
	if err != nil {
		logger.Error(err)
		return err
	}
	metrics.UsersRegisteredTotal.Inc()
	logger.Infof("User %s logged in", user.Name)
	return nil
}

func (h *HandlerSet) HandleLogout(w http.ResponseWriter, req *http.Request) {
	auth.ClearAuthCookie(w)
	http.Redirect(w, req, "/login", http.StatusSeeOther)
}

func (h *HandlerSet) HandleBoard(w http.ResponseWriter, req *http.Request) {
	h.renderBoard(w, req, http.StatusOK, boardPage{})
}

func (h *HandlerSet) renderBoard(w http.ResponseWriter, req *http.Request, status int, page boardPage) {
	user, _ := auth.GetAuthenticatedUser(req)

	b, warning, _ := h.loadBoard(req.Context(), true)

	animated := map[classify.Category]bool{}
	page.Cards = make([]cardView, 0, len(b.Pending))
	for _, c := range b.Pending {
		ok, seen := animated[c.Category]
		if !seen {
			_, ok = h.animations.Lookup(req.Context(), string(c.Category))
			animated[c.Category] = ok
		}
		page.Cards = append(page.Cards, cardView{
			Card:     c,
			Time:     c.CreatedAt.Local().Format(timeLayout),
			Glyph:    c.Category.Glyph(),
			Animated: ok,
		})
	}
	page.History = make([]historyView, 0, len(b.History))
	for _, o := range b.History {
		page.History = append(page.History, historyView{Order: o, Time: o.CreatedAt.Local().Format(timeLayout)})
	}

	page.User = user
	page.Rooms = h.options.Rooms
	page.RefreshSeconds = int(h.options.RefreshInterval.Seconds())
	page.Warning = warning
	h.render(w, status, "board.html", page)
}

func (h *HandlerSet) HandleSubmitOrder(w http.ResponseWriter, req *http.Request) {
	user, ok := auth.GetAuthenticatedUser(req)
	if !ok {
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}
	req.Body = http.MaxBytesReader(w, req.Body, maxBodyBytes)
	if err := req.ParseForm(); err != nil {
		http.Error(w, "Could not parse body", http.StatusBadRequest)
		return
	}

	room, text, err := validate.Order(req.PostForm.Get("room"), req.PostForm.Get("order"))
	if err != nil {
		h.renderBoard(w, req, http.StatusUnprocessableEntity, boardPage{
			Error:     formMessage(err),
			Room:      req.PostForm.Get("room"),
			OrderText: req.PostForm.Get("order"),
		})
		return
	}

	if _, err := h.addOrder(req, user, room, text); err != nil {
		http.Error(w, "Could not save order", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, req, "/", http.StatusSeeOther)
}

func (h *HandlerSet) addOrder(req *http.Request, user auth.User, room, text string) (*types.Order, error) {
	order, err := h.storage.AddOrder(req.Context(), types.NewOrder{Name: user.Name, Room: room, Text: text})
	if err != nil {
		metrics.StorageErrorsTotal.WithLabelValues("add_order").Inc()
		logger.Errorf("Could not save order from %s: %s", user.Name, err)
		return nil, err
	}
	metrics.OrdersSubmittedTotal.Inc()
	logger.Infof("Order %s submitted by %s: %s", order.ID, order.Name, order.Text)
	return order, nil
}

func (h *HandlerSet) HandleMarkDone(w http.ResponseWriter, req *http.Request) {
	_, err := h.markDone(req, chi.URLParam(req, "id"))
	if err != nil && !errors.Is(err, types.ErrOrderAlreadyDone) {
		h.handleMarkDoneError(w, err)
		return
	}
	http.Redirect(w, req, "/", http.StatusSeeOther)
}

func (h *HandlerSet) markDone(req *http.Request, id string) (*types.Order, error) {
	order, err := h.storage.MarkDone(req.Context(), id)
	if err != nil {
		if errors.Is(err, types.ErrOrderAlreadyDone) {
			logger.Infof("Order %s was already done", id)
			return nil, err
		}
		if !errors.Is(err, types.ErrOrderNotFound) {
			metrics.StorageErrorsTotal.WithLabelValues("mark_done").Inc()
			logger.Errorf("Could not mark order %s done: %s", id, err)
		}
		return nil, err
	}
	metrics.OrdersCompletedTotal.Inc()
	logger.Infof("Order %s marked done", id)
	return order, nil
}

func (h *HandlerSet) handleMarkDoneError(w http.ResponseWriter, err error) {
	if errors.Is(err, types.ErrOrderNotFound) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	http.Error(w, "Something went wrong", http.StatusInternalServerError)
}

func (h *HandlerSet) HandleAnimation(w http.ResponseWriter, req *http.Request) {
	name := chi.URLParam(req, "name")
	if _, isCategory := classify.Parse(name); !isCategory && name != animation.Login {
		http.Error(w, "Animation unavailable", http.StatusNotFound)
		return
	}

	body, ok := h.animations.Lookup(req.Context(), name)
	if !ok {
		http.Error(w, "Animation unavailable", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "max-age=600")
	_, err := w.Write(body)
	if err != nil {
		logger.Error(err)
	}
}
