package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/mkralj/traveltime/internal"
)

type Client struct {
	oauthCfg *oauth2.Config
	token    *oauth2.Token

	Verbose bool
}

func NewClient(credJSON []byte) (*Client, error) {
	oauthCfg, err := google.ConfigFromJSON(credJSON, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("google: parsing credentials file: %v", err)
	}

	return &Client{
		oauthCfg: oauthCfg,
	}, nil
}

// SetAuth installs a token previously obtained with Login.
func (c *Client) SetAuth(tokenJSON []byte) error {
	var tok oauth2.Token
	err := json.Unmarshal(tokenJSON, &tok)
	if err != nil {
		return fmt.Errorf("google: parsing auth token: %v", err)
	}
	c.token = &tok
	return nil
}

const defaultSleep = 5 * time.Second

func (c *Client) Calendars(ctx context.Context) ([]*internal.Calendar, error) {
	svc, err := c.calendarSvc(ctx)
	if err != nil {
		return nil, err
	}

	var (
		cals      []*internal.Calendar
		pageToken string
	)
	for {
		list, err := svc.CalendarList.List().Context(ctx).PageToken(pageToken).Do()
		if err != nil {
			if shouldRetry(err) {
				time.Sleep(defaultSleep)
				continue
			}
			return nil, err
		}
		for _, item := range list.Items {
			if item.AccessRole != "owner" {
				continue
			}
			name := item.SummaryOverride
			if name == "" {
				name = item.Summary
			}
			cals = append(cals, &internal.Calendar{
				ID:      item.Id,
				Name:    name,
				Primary: item.Primary,
			})
		}
		pageToken = list.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return cals, nil
}

func (c *Client) EnsureCalendar(ctx context.Context, name string) (*internal.Calendar, error) {
	cals, err := c.Calendars(ctx)
	if err != nil {
		return nil, err
	}
	for _, cal := range cals {
		if cal.Name == name {
			return cal, nil
		}
	}

	svc, err := c.calendarSvc(ctx)
	if err != nil {
		return nil, err
	}
	created, err := svc.Calendars.Insert(&calendar.Calendar{Summary: name}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	cal := &internal.Calendar{ID: created.Id, Name: name}
	c.logf(cal, "calendar created")
	return cal, nil
}

func (c *Client) Events(ctx context.Context, cal *internal.Calendar, from, to time.Time) (internal.Iterator, error) {
	svc, err := c.calendarSvc(ctx)
	if err != nil {
		return nil, err
	}
	eventsCall := svc.Events.
		List(cal.ID).
		Context(ctx).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339))

	it := newEventIterator()
	go c.events(cal, eventsCall, it.events)
	return it, nil
}

func (c *Client) events(cal *internal.Calendar, call *calendar.EventsListCall, eventCh chan eventOrError) {
	c.logf(cal, "checking for events")

	defer close(eventCh)

	var nextPageToken string
	for {
		events, err := call.PageToken(nextPageToken).Do()
		if err != nil {
			if shouldRetry(err) {
				time.Sleep(defaultSleep)
				continue
			}
			c.logf(cal, "unable to get list of events: %v", err)
			eventCh <- eventOrError{err: err}
			return
		}

		for _, item := range events.Items {
			eventCh <- eventOrError{e: newEvent(item)}
		}
		nextPageToken = events.NextPageToken
		if nextPageToken == "" {
			break
		}
	}
}

func (c *Client) CreateEvent(ctx context.Context, cal *internal.Calendar, req *internal.Event) (*internal.Event, error) {
	msg := fmt.Sprintf("creating event: %q on %s... ", req.Summary, req.StartsAt)
	defer func() {
		c.logf(cal, msg)
	}()

	svc, err := c.calendarSvc(ctx)
	if err != nil {
		msg += "❌"
		return nil, err
	}

	var res *internal.Event
	for {
		gevent, err := svc.Events.Insert(cal.ID, newGoogleEvent(req)).Context(ctx).Do()
		if err == nil {
			res = newEvent(gevent)
			msg += "✅"
			break
		}
		if shouldRetry(err) {
			time.Sleep(defaultSleep)
			continue
		}
		msg += "❌"
		return nil, err
	}
	return res, nil
}

func (c *Client) DeleteEvent(ctx context.Context, cal *internal.Calendar, id string) error {
	msg := fmt.Sprintf("deleting event %s... ", id)
	defer func() {
		c.logf(cal, msg)
	}()

	svc, err := c.calendarSvc(ctx)
	if err != nil {
		msg += "❌"
		return err
	}
	for {
		err = svc.Events.Delete(cal.ID, id).Context(ctx).Do()
		if err == nil || alreadyDeleted(err) {
			msg += "✅"
			break
		}
		if shouldRetry(err) {
			time.Sleep(defaultSleep)
			continue
		}
		msg += "❌"
		return err
	}
	return nil
}

func (c *Client) Login(ctx context.Context, prompt func(authURL string)) ([]byte, error) {
	state := fmt.Sprintf("traveltime-%d", time.Now().UTC().Nanosecond())
	authURL := c.oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	prompt(authURL)

	mux := http.NewServeMux()
	server := &http.Server{
		Addr:    ":8080",
		Handler: mux,
	}

	var (
		token   *oauth2.Token
		authErr error
	)

	mux.HandleFunc("/traveltime", func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			go server.Shutdown(ctx)
		}()

		query := req.URL.Query()
		if query.Get("state") != state {
			authErr = errors.New("oauth link is not valid")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		token, authErr = c.oauthCfg.Exchange(ctx, query.Get("code"))
		if authErr != nil {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, "Unable to retrieve token:", authErr)
			return
		}

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "All good, you can close this window!")
	})

	serverCh := make(chan struct{})
	var svrErr error
	go func() {
		svrErr = server.ListenAndServe()
		close(serverCh)
	}()

	<-serverCh

	if svrErr != nil && svrErr != http.ErrServerClosed {
		return nil, svrErr
	}

	if authErr != nil {
		return nil, authErr
	}

	c.token = token
	return json.Marshal(token)
}

func (c *Client) calendarSvc(ctx context.Context) (*calendar.Service, error) {
	if c.token == nil {
		return nil, errors.New("google: not authenticated, run configure first")
	}
	httpClient := c.oauthCfg.Client(ctx, c.token)
	return calendar.NewService(ctx, option.WithHTTPClient(httpClient))
}

func (c *Client) logf(cal *internal.Calendar, format string, a ...any) {
	if c.Verbose {
		internal.Logf(os.Stdout, "google:", cal, format, a...)
	}
}

func shouldRetry(err error) bool {
	return errIsReason(err, "rateLimitExceeded")
}

func alreadyDeleted(err error) bool {
	if errIsReason(err, "deleted") {
		return true
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code == http.StatusNotFound || gErr.Code == http.StatusGone
	}
	return false
}

func errIsReason(err error, reason string) bool {
	var gErr *googleapi.Error
	if !errors.As(err, &gErr) {
		return false
	}

	for _, err := range gErr.Errors {
		switch err.Reason {
		case reason:
			return true
		}
	}
	return false
}
