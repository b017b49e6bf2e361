package main

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/waypoint/app"
	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/logger"
	"github.com/dmitrymomot/waypoint/core/response"
	"github.com/dmitrymomot/waypoint/core/router"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the route table",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "METHOD\tPATTERN")
		for _, rt := range a.Router().Routes() {
			fmt.Fprintf(tw, "%s\t%s\n", rt.Method, rt.Pattern)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}

// registerRoutes mounts the demo endpoints.
func registerRoutes(r router.Router[*app.Context]) {
	r.Get("/", func(ctx *app.Context) handler.Response {
		return response.String("waypoint")
	})

	r.Get("/hello", func(ctx *app.Context) handler.Response {
		return response.Redirect("/hello/world")
	})

	r.Get("/hello/:name", func(ctx *app.Context) handler.Response {
		return response.JSON(map[string]string{"hello": ctx.Param("name")})
	})

	r.Get("/files/*path", func(ctx *app.Context) handler.Response {
		return response.JSON(map[string]string{"path": ctx.Param("path")})
	})

	r.Get("/panic", func(ctx *app.Context) handler.Response {
		panic("demo panic")
	})

	r.WS("/ws/echo", router.WSHandlers[*app.Context]{
		Open: func(ctx *app.Context, conn *router.Conn) {
			ctx.Log().Info("websocket opened", "remote", conn.RemoteAddr().String())
		},
		Message: func(ctx *app.Context, conn *router.Conn, msg router.Message) {
			if err := conn.Send(msg.Type, msg.Data); err != nil {
				ctx.Log().Warn("websocket echo failed", logger.Error(err))
			}
		},
		Close: func(ctx *app.Context, conn *router.Conn, code int, reason string) {
			level := slog.LevelInfo
			if code != websocket.CloseNormalClosure && code != websocket.CloseGoingAway {
				level = slog.LevelWarn
			}
			ctx.Log().Log(ctx, level, "websocket closed", slog.Int("code", code), slog.String("reason", reason))
		},
	})
}
