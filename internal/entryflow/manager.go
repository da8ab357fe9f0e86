package entryflow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	agentdomain "github.com/aventcrm/relance/internal/agent/domain"
	customerdomain "github.com/aventcrm/relance/internal/customer/domain"
	followupdomain "github.com/aventcrm/relance/internal/followup/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const skipToken = "skip"

// Reply is what the transport layer renders back to the operator.
type Reply struct {
	Text string
	// Done marks that the flow reached a terminal step and the session
	// was cleared.
	Done       bool
	CustomerID snowflake.ID
	FollowUpID snowflake.ID
	Customers  []customerdomain.Customer
}

type draft struct {
	Name        string
	Phone       string
	Email       string
	Source      string
	RequestType string
	Destination string
}

// session is the ephemeral per-operator flow state. It is only ever
// touched by its owning operator's sequential requests.
type session struct {
	mu   sync.Mutex
	step Step

	draft draft

	followUpCustomerID snowflake.ID
	daysBefore         int

	newAgentID int64
}

type Params struct {
	fx.In

	Log         *zap.Logger
	CustomerSvc customerdomain.Service
	FollowUpSvc followupdomain.Service
	AgentSvc    agentdomain.Service
}

// Manager owns one entry-flow session per operator. Sessions live in
// memory only; abandoning a flow never leaves partial records behind.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*session

	log         *zap.Logger
	customerSvc customerdomain.Service
	followUpSvc followupdomain.Service
	agentSvc    agentdomain.Service
}

func NewManager(p Params) *Manager {
	return &Manager{
		sessions:    make(map[int64]*session),
		log:         p.Log.Named("entryflow"),
		customerSvc: p.CustomerSvc,
		followUpSvc: p.FollowUpSvc,
		agentSvc:    p.AgentSvc,
	}
}

// StartCustomer begins the guided customer entry for the operator,
// replacing any flow already in progress.
func (m *Manager) StartCustomer(operatorID int64) Reply {
	m.reset(operatorID, &session{step: StepName})
	return Reply{Text: promptName}
}

// StartFollowUp begins the chained follow-up entry for an existing
// customer.
func (m *Manager) StartFollowUp(operatorID int64, customerID snowflake.ID) Reply {
	m.reset(operatorID, &session{step: StepFollowUpKind, followUpCustomerID: customerID})
	return Reply{Text: promptFollowUpKind}
}

// StartSearch begins a free-text customer search.
func (m *Manager) StartSearch(operatorID int64) Reply {
	m.reset(operatorID, &session{step: StepSearch})
	return Reply{Text: promptSearch}
}

// StartAgentEntry begins the admin registration flow.
func (m *Manager) StartAgentEntry(operatorID int64) Reply {
	m.reset(operatorID, &session{step: StepAgentID})
	return Reply{Text: promptAgentID}
}

// Cancel clears the operator's session entirely. Nothing partial is
// ever persisted.
func (m *Manager) Cancel(operatorID int64) Reply {
	m.drop(operatorID)
	return Reply{Text: replyCancelled, Done: true}
}

// ActiveStep reports the operator's current step, StepNone when no
// flow is in progress.
func (m *Manager) ActiveStep(operatorID int64) Step {
	sess := m.lookup(operatorID)
	if sess == nil {
		return StepNone
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.step
}

// Input feeds one free-text message into the operator's session. Input
// with no session or step active is answered with a no-op reply, not
// an error. State only advances when the input is accepted.
func (m *Manager) Input(ctx context.Context, operatorID int64, text string) (Reply, error) {
	sess := m.lookup(operatorID)
	if sess == nil {
		return Reply{Text: replyNoActiveStep}, nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.step == StepNone {
		return Reply{Text: replyNoActiveStep}, nil
	}

	text = strings.TrimSpace(text)

	switch sess.step {
	case StepName:
		if text == "" {
			return Reply{Text: promptNameRequired}, nil
		}
		sess.draft.Name = text
		sess.step = StepPhone
		return Reply{Text: promptPhone}, nil

	case StepPhone:
		applySkippable(&sess.draft.Phone, text)
		sess.step = StepEmail
		return Reply{Text: promptEmail}, nil

	case StepEmail:
		applySkippable(&sess.draft.Email, text)
		sess.step = StepSource
		return Reply{Text: promptSource}, nil

	case StepSource:
		applySkippable(&sess.draft.Source, text)
		sess.step = StepRequestType
		return Reply{Text: promptRequestType}, nil

	case StepRequestType:
		applySkippable(&sess.draft.RequestType, text)
		sess.step = StepDestination
		return Reply{Text: promptDestination}, nil

	case StepDestination:
		applySkippable(&sess.draft.Destination, text)
		return m.persistCustomer(ctx, operatorID, sess)

	case StepFollowUpKind:
		switch strings.ToLower(text) {
		case "date":
			sess.step = StepFollowUpDate
			return Reply{Text: promptFollowUpDate}, nil
		case "before":
			sess.step = StepFollowUpDays
			return Reply{Text: promptFollowUpDays}, nil
		default:
			return Reply{Text: promptFollowUpKind}, nil
		}

	case StepFollowUpDate:
		return m.scheduleDirect(ctx, operatorID, sess, text)

	case StepFollowUpDays:
		days, err := strconv.Atoi(text)
		if err != nil || days < 0 {
			return Reply{Text: replyInvalidNumber}, nil
		}
		sess.daysBefore = days
		sess.step = StepFollowUpRef
		return Reply{Text: promptFollowUpRef}, nil

	case StepFollowUpRef:
		return m.scheduleBefore(ctx, operatorID, sess, text)

	case StepSearch:
		return m.search(ctx, operatorID, text)

	case StepAgentID:
		id, err := strconv.ParseInt(text, 10, 64)
		if err != nil || id == 0 {
			return Reply{Text: replyInvalidID}, nil
		}
		sess.newAgentID = id
		sess.step = StepAgentName
		return Reply{Text: promptAgentName}, nil

	case StepAgentName:
		return m.registerAgent(ctx, operatorID, sess, text)

	default:
		return Reply{Text: replyNoActiveStep}, nil
	}
}

func (m *Manager) persistCustomer(ctx context.Context, operatorID int64, sess *session) (Reply, error) {
	customer, err := m.customerSvc.Create(ctx, customerdomain.CreateCustomerRequest{
		Name:        sess.draft.Name,
		Phone:       sess.draft.Phone,
		Email:       sess.draft.Email,
		Source:      sess.draft.Source,
		RequestType: sess.draft.RequestType,
		Destination: sess.draft.Destination,
	})
	if err != nil {
		return Reply{}, err
	}

	m.drop(operatorID)
	m.log.Info("customer created via entry flow",
		zap.Int64("operator_id", operatorID),
		zap.String("customer_id", customer.ID.String()),
	)
	return Reply{
		Text:       fmt.Sprintf("Customer added (ID %s). Start a follow-up to schedule the first reminder.", customer.ID),
		Done:       true,
		CustomerID: customer.ID,
	}, nil
}

func (m *Manager) scheduleDirect(ctx context.Context, operatorID int64, sess *session, text string) (Reply, error) {
	followUp, err := m.followUpSvc.ScheduleDirect(ctx, followupdomain.ScheduleDirectRequest{
		CustomerID: sess.followUpCustomerID,
		TargetDate: text,
		Kind:       "precise date",
	})
	if err != nil {
		if errors.Is(err, followupdomain.ErrInvalidDate) {
			return Reply{Text: replyInvalidDate}, nil
		}
		return Reply{}, err
	}

	m.drop(operatorID)
	return Reply{
		Text:       fmt.Sprintf("Follow-up scheduled for %s", followUp.TargetDateText()),
		Done:       true,
		CustomerID: followUp.CustomerID,
		FollowUpID: followUp.ID,
	}, nil
}

func (m *Manager) scheduleBefore(ctx context.Context, operatorID int64, sess *session, text string) (Reply, error) {
	followUp, err := m.followUpSvc.ScheduleBeforeDate(ctx, followupdomain.ScheduleBeforeRequest{
		CustomerID:    sess.followUpCustomerID,
		DaysBefore:    sess.daysBefore,
		ReferenceDate: text,
	})
	if err != nil {
		if errors.Is(err, followupdomain.ErrInvalidDate) {
			return Reply{Text: replyInvalidDate}, nil
		}
		return Reply{}, err
	}

	m.drop(operatorID)
	return Reply{
		Text:       fmt.Sprintf("Follow-up scheduled for %s", followUp.TargetDateText()),
		Done:       true,
		CustomerID: followUp.CustomerID,
		FollowUpID: followUp.ID,
	}, nil
}

func (m *Manager) search(ctx context.Context, operatorID int64, text string) (Reply, error) {
	customers, err := m.customerSvc.Search(ctx, text)
	if err != nil {
		return Reply{}, err
	}
	if len(customers) == 0 {
		// Stay on the step so the operator can retry the query.
		return Reply{Text: replyNoResults}, nil
	}

	m.drop(operatorID)
	return Reply{
		Text:      fmt.Sprintf("%d customer(s) found.", len(customers)),
		Done:      true,
		Customers: customers,
	}, nil
}

func (m *Manager) registerAgent(ctx context.Context, operatorID int64, sess *session, text string) (Reply, error) {
	name := text
	if strings.EqualFold(name, skipToken) {
		name = ""
	}

	agent, err := m.agentSvc.Register(ctx, sess.newAgentID, name, agentdomain.RoleAdmin)
	if err != nil {
		return Reply{}, err
	}

	m.drop(operatorID)
	return Reply{
		Text: fmt.Sprintf("Admin %d registered.", agent.ExternalID),
		Done: true,
	}, nil
}

func (m *Manager) lookup(operatorID int64) *session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[operatorID]
}

func (m *Manager) reset(operatorID int64, sess *session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[operatorID] = sess
}

func (m *Manager) drop(operatorID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, operatorID)
}

func applySkippable(field *string, text string) {
	if strings.EqualFold(text, skipToken) {
		return
	}
	*field = text
}
