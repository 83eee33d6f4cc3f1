package fsd_client

import (
	"bufio"
	"context"
	"encoding/hex"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bassosimone/netstub"
	"github.com/bassosimone/slogstub"
	"github.com/half-nothing/fsd-client/internal/base"
	"github.com/half-nothing/fsd-client/internal/fsd_client/auth"
	"github.com/half-nothing/fsd-client/internal/interfaces/config"
	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCallsign = "CES2352"
	testCid      = "2352"
	testPassword = "secret"
	waitTimeout  = 2 * time.Second
)

var testAuthKey = []byte("0123456789abcdef0123456789abcdef")

// testHarness 一端是 Client, 另一端是测试代码扮演的服务器
type testHarness struct {
	t      *testing.T
	client *Client
	dials  atomic.Int32
	lines  chan string
	events chan fsd.Event

	mu     sync.Mutex
	server net.Conn

	recordsMu sync.Mutex
	records   []slog.Record
}

func newTestConfig(t *testing.T, mutate func(cfg *config.Config)) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Client.Callsign = testCallsign
	cfg.Client.Cid = testCid
	cfg.Client.Password = testPassword
	cfg.Client.RealName = "Test User"
	cfg.Client.Homebase = "ZSSS"
	cfg.Client.UnitTestMode = true
	cfg.Database.Enabled = false
	if mutate != nil {
		mutate(cfg)
	}
	result := cfg.CheckValid(base.NewLogger())
	require.False(t, result.IsFail(), "%v", result.Error())
	return cfg
}

func newTestHarness(t *testing.T, mutateConfig func(cfg *config.Config), mutateOptions func(options *Options)) *testHarness {
	h := &testHarness{
		t:      t,
		lines:  make(chan string, 4096),
		events: make(chan fsd.Event, 4096),
	}
	handler := &slogstub.FuncHandler{
		EnabledFunc: func(ctx context.Context, level slog.Level) bool { return true },
		HandleFunc: func(ctx context.Context, record slog.Record) error {
			h.recordsMu.Lock()
			defer h.recordsMu.Unlock()
			h.records = append(h.records, record)
			return nil
		},
	}
	options := &Options{
		Logger: base.NewLoggerWithHandler(handler),
		Config: newTestConfig(t, mutateConfig),
		Dialer: &netstub.FuncDialer{
			DialContextFunc: func(ctx context.Context, network, address string) (net.Conn, error) {
				h.dials.Add(1)
				clientSide, serverSide := net.Pipe()
				h.attach(serverSide)
				return clientSide, nil
			},
		},
	}
	if mutateOptions != nil {
		mutateOptions(options)
	}
	client, err := NewClient(options)
	require.NoError(t, err)
	h.client = client
	client.Subscribe(func(event fsd.Event) {
		select {
		case h.events <- event:
		default:
		}
	})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
		defer cancel()
		assert.NoError(t, client.Shutdown(ctx))
	})
	return h
}

// attach 后台持续读取, 避免 net.Pipe 的写入阻塞工作协程
func (h *testHarness) attach(conn net.Conn) {
	h.mu.Lock()
	h.server = conn
	h.mu.Unlock()
	go func() {
		reader := bufio.NewReader(conn)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			h.lines <- strings.TrimRight(line, "\r\n")
		}
	}()
}

func (h *testHarness) send(line string) {
	h.mu.Lock()
	conn := h.server
	h.mu.Unlock()
	require.NotNil(h.t, conn)
	_, err := conn.Write([]byte(line + "\r\n"))
	require.NoError(h.t, err)
}

// expectLine 跳过其他报文直到出现指定前缀
func (h *testHarness) expectLine(prefix string) string {
	h.t.Helper()
	timeout := time.After(waitTimeout)
	for {
		select {
		case line := <-h.lines:
			if strings.HasPrefix(line, prefix) {
				return line
			}
		case <-timeout:
			h.t.Fatalf("timeout waiting for %q", prefix)
			return ""
		}
	}
}

// drainLines 返回目前为止收到的全部报文
func (h *testHarness) drainLines() []string {
	var result []string
	for {
		select {
		case line := <-h.lines:
			result = append(result, line)
		default:
			return result
		}
	}
}

func (h *testHarness) waitStatus(status fsd.ConnectionStatus) {
	h.t.Helper()
	require.Eventually(h.t, func() bool { return h.client.Status() == status }, waitTimeout, 5*time.Millisecond,
		"expected status %s, got %s", status, h.client.Status())
}

func (h *testHarness) connect() {
	h.t.Helper()
	require.NoError(h.t, h.client.Connect())
	h.expectLine("#AP" + testCallsign)
	h.waitStatus(fsd.Connected)
}

// sync 等待工作协程处理完之前投递的全部任务
func (h *testHarness) sync() {
	require.NoError(h.t, h.client.call(func() {}))
}

func waitEvent[T fsd.Event](t *testing.T, events <-chan fsd.Event) T {
	t.Helper()
	timeout := time.After(waitTimeout)
	for {
		select {
		case event := <-events:
			if typed, ok := event.(T); ok {
				return typed
			}
		case <-timeout:
			var zero T
			t.Fatalf("timeout waiting for %T", zero)
			return zero
		}
	}
}

func statusChanges(events <-chan fsd.Event) []fsd.ConnectionStatus {
	var result []fsd.ConnectionStatus
	for {
		select {
		case event := <-events:
			if changed, ok := event.(*fsd.ConnectionStatusChanged); ok {
				result = append(result, changed.New)
			}
		default:
			return result
		}
	}
}

func TestConnectLogsInAndMasksPassword(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	require.NoError(t, h.client.Connect())

	login := h.expectLine("#AP")
	assert.Equal(t, "#APCES2352:SERVER:2352:secret:1:9:"+strconv.Itoa(h.client.config.Client.SimType)+":Test User ZSSS", login)
	h.waitStatus(fsd.Connected)
	assert.NotEmpty(t, h.client.SessionId())

	var masked string
	for masked == "" {
		raw := waitEvent[*fsd.RawMessage](t, h.events)
		if raw.Outbound && strings.HasPrefix(raw.Line, "#AP") {
			masked = raw.Line
		}
	}
	assert.Equal(t, "#APCES2352:SERVER:2352:<password>:1:9:"+strconv.Itoa(h.client.config.Client.SimType)+":Test User ZSSS", masked)
	h.recordsMu.Lock()
	for _, record := range h.records {
		assert.NotContains(t, record.Message, ":"+testPassword+":")
	}
	h.recordsMu.Unlock()

	h.client.Disconnect()
	assert.Equal(t, "#DPCES2352:2352", h.expectLine("#DP"))
	h.waitStatus(fsd.Disconnected)
}

func TestConnectIsNoopWhenNotDisconnected(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.connect()
	require.NoError(t, h.client.Connect())
	h.sync()
	assert.Equal(t, int32(1), h.dials.Load())
	assert.Equal(t, fsd.Connected, h.client.Status())
}

func TestDisconnectWhenDisconnectedIsNoop(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.client.Disconnect()
	h.sync()
	assert.Empty(t, statusChanges(h.events))
	assert.Equal(t, int32(0), h.dials.Load())
}

func TestSettersRequireDisconnected(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	require.NoError(t, h.client.SetCallsign(" ces123 "))
	assert.Equal(t, "CES123", h.client.Callsign())
	require.NoError(t, h.client.SetCallsign(testCallsign))

	h.connect()
	setters := map[string]func() error{
		"callsign":    func() error { return h.client.SetCallsign("CES1") },
		"credentials": func() error { return h.client.SetCredentials("1", "2", "3", "4") },
		"login mode":  func() error { return h.client.SetLoginMode(fsd.LoginObserver) },
		"sim type":    func() error { return h.client.SetSimType(fsd.SimMSFS2020) },
		"server":      func() error { return h.client.SetServer(h.client.config.Server) },
	}
	for name, setter := range setters {
		assert.ErrorIs(t, setter(), fsd.ErrNotDisconnected, name)
	}
	assert.Equal(t, testCallsign, h.client.Callsign())
}

func TestConnectRequiresIdentity(t *testing.T) {
	h := newTestHarness(t, func(cfg *config.Config) { cfg.Client.Callsign = "" }, nil)
	assert.ErrorIs(t, h.client.Connect(), fsd.ErrMissingCallsign)

	h = newTestHarness(t, func(cfg *config.Config) {
		cfg.Client.Callsign = ""
		cfg.Client.DebugAsserts = true
	}, nil)
	assert.Panics(t, func() { _ = h.client.Connect() })
}

func TestPendingWatchdogDisconnects(t *testing.T) {
	h := newTestHarness(t, func(cfg *config.Config) {
		cfg.Timing.PendingConnectionTimeout = "40ms"
	}, func(options *Options) {
		options.Dialer = &netstub.FuncDialer{
			DialContextFunc: func(ctx context.Context, network, address string) (net.Conn, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
		}
	})
	require.NoError(t, h.client.Connect())
	h.waitStatus(fsd.Connecting)
	h.waitStatus(fsd.Disconnected)

	time.Sleep(150 * time.Millisecond)
	h.sync()
	assert.Equal(t, []fsd.ConnectionStatus{fsd.Connecting, fsd.Disconnecting, fsd.Disconnected}, statusChanges(h.events))
}

func authConfig(cfg *config.Config) {
	cfg.Server.ProtocolRevision = int(fsd.ProtocolVatsimAuth)
	cfg.Server.AuthKey = hex.EncodeToString(testAuthKey)
}

func TestAuthMismatchNeverLogsIn(t *testing.T) {
	h := newTestHarness(t, authConfig, nil)
	require.NoError(t, h.client.Connect())
	require.Eventually(t, func() bool { return h.dials.Load() == 1 }, waitTimeout, 5*time.Millisecond)
	h.sync()
	assert.Equal(t, fsd.Connecting, h.client.Status())

	h.send("$ZRSERVER:CES2352:00000000000000000000000000000000")
	h.waitStatus(fsd.Disconnected)
	for _, line := range h.drainLines() {
		assert.False(t, strings.HasPrefix(line, "#AP"), "unexpected login %q", line)
	}
}

func TestAuthHandshake(t *testing.T) {
	h := newTestHarness(t, authConfig, nil)
	authenticator, err := auth.NewBlake2bAuthenticator(testAuthKey)
	require.NoError(t, err)
	toClient := authenticator.NewContext()
	fromClient := authenticator.NewContext()
	initial := toClient.GenerateChallenge()
	toClient.SetInitialChallenge(initial)

	require.NoError(t, h.client.Connect())
	require.Eventually(t, func() bool { return h.dials.Load() == 1 }, waitTimeout, 5*time.Millisecond)
	h.send("$DISERVER:CLIENT:VATSIM FSD V3.13:" + initial)

	identification := strings.Split(h.expectLine("$ID"), ":")
	require.Len(t, identification, 9)
	fromClient.SetInitialChallenge(identification[8])
	h.expectLine("#AP" + testCallsign)
	h.waitStatus(fsd.Connected)

	challenge := toClient.GenerateChallenge()
	h.send("$ZCSERVER:CES2352:" + challenge)
	response := strings.Split(h.expectLine("$ZR"), ":")
	assert.Equal(t, toClient.GenerateResponse(challenge), response[2])
	serverChallenge := strings.Split(h.expectLine("$ZC"), ":")[2]

	h.send("$ZRSERVER:CES2352:" + fromClient.GenerateResponse(serverChallenge))
	h.sync()
	assert.Equal(t, fsd.Connected, h.client.Status())
}

func TestAuthResponseMismatchAfterChallenge(t *testing.T) {
	h := newTestHarness(t, authConfig, nil)
	authenticator, err := auth.NewBlake2bAuthenticator(testAuthKey)
	require.NoError(t, err)
	toClient := authenticator.NewContext()
	initial := toClient.GenerateChallenge()
	toClient.SetInitialChallenge(initial)

	require.NoError(t, h.client.Connect())
	require.Eventually(t, func() bool { return h.dials.Load() == 1 }, waitTimeout, 5*time.Millisecond)
	h.send("$DISERVER:CLIENT:VATSIM FSD V3.13:" + initial)
	h.expectLine("#AP" + testCallsign)
	h.waitStatus(fsd.Connected)

	h.send("$ZCSERVER:CES2352:" + toClient.GenerateChallenge())
	h.expectLine("$ZR")
	h.expectLine("$ZC")

	h.send("$ZRSERVER:CES2352:00000000000000000000000000000000")
	h.waitStatus(fsd.Disconnected)
	h.sync()
	assert.EqualValues(t, 1, h.dials.Load())
}

func TestWriteFailureDuringTickDisconnectsOnce(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.connect()
	h.sync()
	for len(h.events) > 0 {
		<-h.events
	}

	require.NoError(t, h.client.call(func() {
		h.mu.Lock()
		assert.NoError(t, h.server.Close())
		h.mu.Unlock()
		h.client.pacer.Enqueue("#TMCES2352:ZSSS_TWR:one")
		h.client.pacer.Enqueue("#TMCES2352:ZSSS_TWR:two")
		h.client.pacer.Enqueue("#TMCES2352:ZSSS_TWR:three")
		h.client.pacer.Tick()
		assert.Zero(t, h.client.pacer.Len())
	}))
	h.waitStatus(fsd.Disconnected)
	h.sync()

	severe := 0
	for len(h.events) > 0 {
		if _, ok := (<-h.events).(*fsd.SevereNetworkError); ok {
			severe++
		}
	}
	assert.Equal(t, 1, severe)
}

func TestTimerActionsSkippedAfterShutdown(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	ran := 0
	require.NoError(t, h.client.call(func() { h.client.tick(func() { ran++ }) }))
	assert.Equal(t, 1, ran)

	h.client.shutdown.Store(true)
	h.client.tick(func() { ran++ })
	h.client.shutdown.Store(false)
	assert.Equal(t, 1, ran)
}

func TestIncrementalAircraftConfig(t *testing.T) {
	own := NewStaticOwnAircraft(&fsd.OwnAircraft{Callsign: testCallsign})
	h := newTestHarness(t, nil, func(options *Options) { options.OwnAircraft = own })

	broadcast := func() string {
		var line string
		require.NoError(t, h.client.call(func() {
			h.client.session = h.client.readIdentity()
			h.client.sendIncrementalAircraftConfig()
		}))
		for {
			select {
			case event := <-h.events:
				if raw, ok := event.(*fsd.RawMessage); ok && raw.Outbound {
					line = raw.Line
				}
			default:
				return line
			}
		}
	}

	first := broadcast()
	assert.True(t, strings.HasPrefix(first, "$CQCES2352:@94836:ACC:{\"config\":{"), first)
	assert.Contains(t, first, "\"gear_down\":false")
	assert.Empty(t, broadcast())

	own.Update(func(aircraft *fsd.OwnAircraft) {
		aircraft.Parts.GearDown = true
		aircraft.Parts.Lights.LandingOn = true
	})
	assert.Equal(t, `$CQCES2352:@94836:ACC:{"config":{"gear_down":true,"lights":{"landing_on":true}}}`, broadcast())
}

func TestAtisFromClientResponses(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.connect()

	h.send("$CRZSSS_ATIS:CES2352:ATIS:V:voice.example.net/zsss_atis")
	h.send("$CRZSSS_ATIS:CES2352:ATIS:T:SHANGHAI INFORMATION A")
	h.send("$CRZSSS_ATIS:CES2352:ATIS:T:z")
	h.send("$CRZSSS_ATIS:CES2352:ATIS:T:RUNWAY 35L")
	h.send("$CRZSSS_ATIS:CES2352:ATIS:Z:2200z")
	h.send("$CRZSSS_ATIS:CES2352:ATIS:E:5")

	voice := waitEvent[*fsd.AtisVoiceRoom](t, h.events)
	assert.Equal(t, "voice.example.net/zsss_atis", voice.Url)
	logoff := waitEvent[*fsd.AtisLogoffTime](t, h.events)
	assert.Equal(t, "2200z", logoff.LogoffTime)
	reply := waitEvent[*fsd.AtisReply](t, h.events)
	assert.Equal(t, "ZSSS_ATIS", reply.Sender)
	assert.Equal(t, "SHANGHAI INFORMATION A\nRUNWAY 35L", reply.Text)
}

func TestAtisFromPrivateMessages(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.connect()

	require.NoError(t, h.client.SendClientQuery(fsd.QueryATIS, "ZSSS_ATIS"))
	assert.Equal(t, "$CQCES2352:ZSSS_ATIS:ATIS", h.expectLine("$CQCES2352:ZSSS_ATIS"))

	h.send("#TMZSSS_ATIS:CES2352:SHANGHAI INFORMATION A")
	h.send("#TMZSSS_ATIS:CES2352:RUNWAY 35L")
	h.send("#TMZSSS_ATIS:CES2352:2200z")

	logoff := waitEvent[*fsd.AtisLogoffTime](t, h.events)
	assert.Equal(t, "2200z", logoff.LogoffTime)
	reply := waitEvent[*fsd.AtisReply](t, h.events)
	assert.Contains(t, reply.Text, "SHANGHAI INFORMATION A")
	assert.Contains(t, reply.Text, "RUNWAY 35L")
}

func TestPingPong(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	h := newTestHarness(t, nil, func(options *Options) {
		options.TimeNow = func() time.Time { return now }
	})
	h.connect()

	h.send("$PIZSSS_APP:CES2352:12345")
	assert.Equal(t, "$POCES2352:ZSSS_APP:12345", h.expectLine("$PO"))

	require.NoError(t, h.client.SendPing("SERVER"))
	assert.Equal(t, "$PICES2352:SERVER:1700000000000", h.expectLine("$PI"))

	h.send("$POSERVER:CES2352:" + strconv.FormatInt(now.Add(-150*time.Millisecond).UnixMilli(), 10))
	pong := waitEvent[*fsd.Pong](t, h.events)
	assert.Equal(t, "SERVER", pong.Sender)
	assert.Equal(t, 150*time.Millisecond, pong.Rtt)
}

func TestKillRequestDisconnects(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.connect()
	h.send("$!!SERVER:CES2352:bye")
	kill := waitEvent[*fsd.KillRequest](t, h.events)
	assert.Equal(t, "bye", kill.Reason)
	h.waitStatus(fsd.Disconnected)
}

func TestServerErrors(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.connect()

	h.send("$ERserver:CES2352:007:ZZZZ:No such callsign")
	serverError := waitEvent[*fsd.ServerError](t, h.events)
	assert.Equal(t, fsd.NoSuchCallsign, serverError.Code)
	h.sync()
	assert.Equal(t, fsd.Connected, h.client.Status())

	h.send("$ERserver:CES2352:001:CES2352:Callsign in use")
	serverError = waitEvent[*fsd.ServerError](t, h.events)
	assert.Equal(t, fsd.CallsignInUse, serverError.Code)
	h.waitStatus(fsd.Disconnected)
}

func TestTextMessagesAreDebounced(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.connect()

	h.send("#TMZSSS_TWR:CES2352:hello")
	h.send("#TMZSSS_TWR:CES2352:world")
	messages := waitEvent[*fsd.TextMessages](t, h.events)
	require.Len(t, messages.Messages, 2)
	assert.Equal(t, "hello", messages.Messages[0].Message)
	assert.Equal(t, "world", messages.Messages[1].Message)

	h.send("#TMSERVER:*S:supervisor")
	messages = waitEvent[*fsd.TextMessages](t, h.events)
	require.Len(t, messages.Messages, 1)
	assert.True(t, messages.Messages[0].Supervisor)
}

func TestSendRejectsEmptyRecipient(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	assert.ErrorIs(t, h.client.SendTextMessage("  ", "hi"), fsd.ErrEmptyRecipient)
	assert.ErrorIs(t, h.client.SendRadioMessage(nil, "hi"), fsd.ErrEmptyRecipient)
	assert.ErrorIs(t, h.client.SendPing(""), fsd.ErrEmptyRecipient)
	assert.ErrorIs(t, h.client.SendClientQuery(fsd.QueryUnknown, "SERVER"), fsd.ErrUnknownQueryType)
	assert.ErrorIs(t, h.client.SendPlaneInfoRequestFsinn("CES1"), fsd.ErrNotConnected)
}

func TestNetworkStatisticsText(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.connect()
	h.send("$PIZSSS_APP:CES2352:1")
	h.expectLine("$PO")
	h.sync()

	text := h.client.NetworkStatisticsText(false, "\n")
	assert.Contains(t, text, "sendLogin: 1")
	assert.Contains(t, text, "sendPong: 1")
	assert.Contains(t, text, "parseMessage.Ping: 1")

	assert.NotEmpty(t, h.client.NetworkStatisticsText(true, "\n"))
	assert.Empty(t, h.client.NetworkStatisticsText(false, "\n"))
}

func TestShutdownRejectsFurtherCalls(t *testing.T) {
	h := newTestHarness(t, nil, nil)
	h.connect()
	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	require.NoError(t, NewClientCloseCallback(h.client).Invoke(ctx))
	assert.Equal(t, fsd.Disconnected, h.client.Status())
	assert.ErrorIs(t, h.client.Connect(), fsd.ErrClientShutdown)
	assert.ErrorIs(t, h.client.SendTextMessage("ZSSS_TWR", "hi"), fsd.ErrClientShutdown)
}
