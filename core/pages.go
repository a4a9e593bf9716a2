package core

const (
	loginPath          = "/"
	userDashboardPath  = "/user-dashboard"
	adminDashboardPath = "/admin-dashboard"
)

// dashboardFor picks the landing page for the role named in a login request.
func dashboardFor(role string) string {
	if Role(role) == RoleUser {
		return userDashboardPath
	}
	return adminDashboardPath
}

const loginPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Login Page</title>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; display: flex; justify-content: center; align-items: center; height: 100vh; }
        .container { background-color: white; padding: 20px; border-radius: 10px; box-shadow: 0 0 10px rgba(0, 0, 0, 0.1); }
        input, select { width: 100%; padding: 10px; margin: 10px 0; border: 1px solid #ccc; border-radius: 5px; }
        button { width: 100%; padding: 10px; background-color: #5cb85c; color: white; border: none; border-radius: 5px; cursor: pointer; }
    </style>
</head>
<body>
    <div class="container">
        <h2>Login</h2>
        <form action="/login" method="POST">
            <input type="text" name="username" placeholder="Username" required>
            <input type="password" name="password" placeholder="Password" required>
            <select name="role">
                <option value="user">User</option>
                <option value="admin">Admin</option>
            </select>
            <button type="submit">Login</button>
        </form>
    </div>
</body>
</html>
`

const (
	userDashboardHTML  = `<h1>Welcome to User Dashboard!</h1>`
	adminDashboardHTML = `<h1>Welcome to Admin Dashboard!</h1>`
)
