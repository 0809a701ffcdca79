package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/AmperaEnergia/api-diario/internal/utils"
)

type ctxKey string

const (
	CtxUsuarioID ctxKey = "usuarioID"
	CtxUsername  ctxKey = "username"
	CtxPerfil    ctxKey = "perfil"
)

// VerificadorUsuario confirma que o usuário embutido no token ainda existe
// e está ativo. Injetado pelo main para evitar dependência circular com o
// pacote usuario.
type VerificadorUsuario func(id uint) error

type Middleware struct {
	verificarUsuario VerificadorUsuario
}

func NewMiddleware(v VerificadorUsuario) *Middleware {
	return &Middleware{verificarUsuario: v}
}

// Autenticar valida o bearer token e carrega a identidade no contexto
func (m *Middleware) Autenticar(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			utils.RespondErro(w, http.StatusUnauthorized, "Token ausente")
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ValidarToken(raw)
		if err != nil {
			utils.RespondErro(w, http.StatusUnauthorized, "Token inválido ou expirado")
			return
		}
		if m.verificarUsuario != nil {
			if err := m.verificarUsuario(claims.UserID); err != nil {
				utils.RespondErro(w, http.StatusUnauthorized, "Usuário não encontrado")
				return
			}
		}
		ctx := context.WithValue(r.Context(), CtxUsuarioID, claims.UserID)
		ctx = context.WithValue(ctx, CtxUsername, claims.Username)
		ctx = context.WithValue(ctx, CtxPerfil, claims.Perfil)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ExigirPermissao nega a rota quando o perfil do contexto não carrega a
// capacidade exigida
func ExigirPermissao(p Permissao) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			perfil, _ := r.Context().Value(CtxPerfil).(string)
			if !PerfilTemPermissao(perfil, p) {
				utils.RespondErro(w, http.StatusForbidden, "Acesso negado! Perfil insuficiente.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UsuarioIDDoContexto retorna o id do usuário autenticado, ou zero
func UsuarioIDDoContexto(ctx context.Context) uint {
	id, _ := ctx.Value(CtxUsuarioID).(uint)
	return id
}

// PerfilDoContexto retorna o nome do perfil autenticado, ou vazio
func PerfilDoContexto(ctx context.Context) string {
	p, _ := ctx.Value(CtxPerfil).(string)
	return p
}
