// token imprime un JWT HS256 firmado con JWT_SECRET para probar la API.
//
// Uso: go run ./cmd/token -user operador1 -role operador
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Remisiones-api/pkg/config"
	"github.com/jhoicas/Remisiones-api/pkg/jwt"
)

func main() {
	user := flag.String("user", "operador", "user_id del token")
	role := flag.String("role", jwt.RoleOperator, "rol: admin, operador o consulta")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if !cfg.JWT.Enabled() {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no está definido")
		os.Exit(1)
	}
	switch *role {
	case jwt.RoleAdmin, jwt.RoleOperator, jwt.RoleViewer:
	default:
		fmt.Fprintf(os.Stderr, "rol desconocido %q\n", *role)
		os.Exit(1)
	}

	tok, err := jwt.Generate(cfg.JWT.Secret, *user, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
