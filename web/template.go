package web

import "html/template"

var ConfigureTemplate = template.Must(template.New("configure").Parse(configurePage))

const configurePage = `<!DOCTYPE html>
<html>
<head>
	<title>Jellio - Configure</title>
	<style>
		body { font-family: Arial, sans-serif; padding: 40px; background: #101010; color: #fff; }
		.container { max-width: 600px; margin: 0 auto; }
		h1 { color: #00a4dc; }
		label { display: block; margin-top: 16px; }
		input[type=text], input[type=password] { width: 100%; padding: 8px; margin-top: 4px; background: #1c1c1c; border: 1px solid #333; color: #fff; border-radius: 4px; }
		.error { color: #e87c86; margin-top: 4px; }
		button { margin-top: 24px; padding: 12px 24px; background: #00a4dc; color: white; border: none; border-radius: 4px; cursor: pointer; }
	</style>
</head>
<body>
	<div class="container">
		<h1>Jellio</h1>
		<p>Expose your Jellyfin libraries as a Stremio addon.</p>
		<form method="POST" action="/configure">
			<label>Server name
				<input type="text" name="serverName" value="{{.ServerName}}" placeholder="Jellyfin">
			</label>
			<label>Jellyfin access token
				<input type="password" name="authToken" value="{{.AuthToken}}">
			</label>
			{{with .Errors.AuthToken}}<div class="error">{{.}}</div>{{end}}
			<label>Library ids (comma separated)
				<input type="text" name="libraries" value="{{.Libraries}}">
			</label>
			{{with .Errors.Libraries}}<div class="error">{{.}}</div>{{end}}
			<label>
				<input type="checkbox" name="jellyseerrEnabled" {{if .JellyseerrEnabled}}checked{{end}}>
				Enable Jellyseerr requests
			</label>
			<label>Jellyseerr address
				<input type="text" name="jellyseerrUrl" value="{{.JellyseerrURL}}" placeholder="http://jellyseerr.local:5055">
			</label>
			{{with .Errors.JellyseerrURL}}<div class="error">{{.}}</div>{{end}}
			<label>Jellyseerr API key
				<input type="password" name="jellyseerrApiKey" value="{{.JellyseerrAPIKey}}">
			</label>
			<button type="submit">Install</button>
		</form>
	</div>
</body>
</html>
`
