package echoweb

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/spms/core/record"
	"github.com/trezcool/spms/core/session"
)

const (
	sessionCookie     = "spms_session"
	contextSessionKey = "session"
	signingMethod     = "HS256"
)

var errInvalidToken = errors.New("invalid session token")

// Claims represents the session transmitted via the session cookie.
type Claims struct {
	jwt.StandardClaims
	Auth  bool   `json:"auth"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type sessionCodec struct {
	key    []byte
	secure bool
}

func newSessionCodec(secret string, secure bool) sessionCodec {
	return sessionCodec{key: []byte(secret), secure: secure}
}

// Encode signs sess into a JWT. Sessions never expire; logging out drops the cookie.
func (c sessionCodec) Encode(sess session.Session) (string, error) {
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{IssuedAt: time.Now().Unix()},
		Auth:           sess.Authenticated,
		Name:           sess.Profile.Name,
		Email:          sess.Profile.Email,
	}
	token := jwt.NewWithClaims(jwt.GetSigningMethod(signingMethod), claims)
	ss, err := token.SignedString(c.key)
	return ss, errors.Wrap(err, "signing session token")
}

func (c sessionCodec) Decode(token string) (session.Session, error) {
	claims := new(Claims)
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != signingMethod {
			return nil, errInvalidToken
		}
		return c.key, nil
	})
	if err != nil || !tkn.Valid {
		return session.Session{}, errInvalidToken
	}
	return session.Session{
		Authenticated: claims.Auth,
		Profile:       session.Profile{Name: claims.Name, Email: claims.Email},
	}, nil
}

func (c sessionCodec) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// sessionMiddleware loads the session once per request; handlers read it with getSession.
func (s *Server) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var sess session.Session
		if c, err := ctx.Cookie(sessionCookie); err == nil && c.Value != "" {
			if sess, err = s.sessions.Decode(c.Value); err != nil {
				ctx.SetCookie(s.sessions.cookie("", -1))
			}
		}
		ctx.Set(contextSessionKey, sess)
		return next(ctx)
	}
}

func getSession(ctx echo.Context) session.Session {
	sess, _ := ctx.Get(contextSessionKey).(session.Session)
	return sess
}

func requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if !getSession(ctx).Authenticated {
			return ctx.Redirect(http.StatusSeeOther, "/login")
		}
		return next(ctx)
	}
}

type loginView struct {
	Email string
	Error string
}

// Handlers

func (s *Server) loginPage(ctx echo.Context) error {
	if getSession(ctx).Authenticated {
		return ctx.Redirect(http.StatusSeeOther, "/")
	}
	return render(ctx, http.StatusOK, "login", "Login", loginView{})
}

func (s *Server) login(ctx echo.Context) error {
	if getSession(ctx).Authenticated {
		return ctx.Redirect(http.StatusSeeOther, "/")
	}

	var data session.LoginRequest
	if err := bindForm(ctx, &data); err != nil {
		return err
	}
	sess, err := session.Login(data)
	if err != nil {
		return render(ctx, http.StatusBadRequest, "login", "Login", loginView{Email: data.Email, Error: err.Error()})
	}

	token, err := s.sessions.Encode(sess)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	ctx.SetCookie(s.sessions.cookie(token, 0))
	s.log.Info("operator logged in", sess.Profile)
	return ctx.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) logout(ctx echo.Context) error {
	ctx.SetCookie(s.sessions.cookie("", -1))
	return ctx.Redirect(http.StatusSeeOther, "/login")
}

// bindForm decodes the posted form into dst.
func bindForm(ctx echo.Context, dst interface{}) error {
	params, err := ctx.FormParams()
	if err != nil {
		return errors.Wrap(err, "reading form")
	}
	if err := record.DecodeForm(dst, params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed form").SetInternal(err)
	}
	return nil
}
